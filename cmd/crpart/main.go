package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greenpdx/crpart/app"
	"github.com/greenpdx/crpart/pipeline"
	"github.com/greenpdx/crpart/settings"
	"github.com/greenpdx/crpart/sizes"
)

const (
	exitValidationFailure = 2
	exitExecutionFailure  = 1
)

var (
	deviceFlag      string
	rootSizeFlag    string
	swapSizeFlag    string
	varSizeFlag     string
	dryRun          bool
	forceRemovable  bool
	allowActiveDisk bool
	assumeYes       bool
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "crpart",
	Short: "Shrink a root filesystem and carve swap, /var and /home partitions",
	Long: `crpart shrinks the root filesystem of a device (typically a Raspberry Pi
SD card or USB disk), resizes its partition, creates optional swap and
/var partitions plus a /home partition in the freed space, migrates the
data and rewrites /etc/fstab keyed by filesystem UUID.

Partition creation and filesystem shrinking are destructive and are not
rolled back on failure; always start with --dry-run.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&deviceFlag, "device", "d", "", "Target device (e.g. /dev/mmcblk0, /dev/sda)")
	rootCmd.Flags().StringVarP(&rootSizeFlag, "root-size", "r", "", "Root filesystem size (e.g. 16G). Min 8G, max 64G")
	rootCmd.Flags().StringVarP(&swapSizeFlag, "swap-size", "s", "", "Swap partition size (e.g. 4G)")
	rootCmd.Flags().StringVarP(&varSizeFlag, "var-size", "v", "", "/var partition size (e.g. 8G)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without making changes")
	rootCmd.Flags().BoolVarP(&forceRemovable, "force-removable", "f", false, "Allow swap/var partitions on removable media (warns)")
	rootCmd.Flags().BoolVar(&allowActiveDisk, "allow-active-disk", false, "Allow operating on the disk backing the running system")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	rootCmd.MarkFlagRequired("device")    //nolint:errcheck
	rootCmd.MarkFlagRequired("root-size") //nolint:errcheck
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var stageErr pipeline.StageError
		if errors.As(err, &stageErr) {
			os.Exit(exitExecutionFailure)
		}
		os.Exit(exitValidationFailure)
	}
}

func run(cmd *cobra.Command, args []string) error {
	config, err := buildRunConfig()
	if err != nil {
		return err
	}

	logLevel := boshlog.LevelWarn
	if verbose {
		logLevel = boshlog.LevelDebug
	}
	logger := boshlog.NewLogger(logLevel)

	crpart := app.New(logger)

	geometry, plan, err := crpart.Plan(config)
	if err != nil {
		return err
	}

	printGeometry(geometry)
	printPlan(plan)

	if dryRun {
		color.Cyan("\nDry run mode: no changes will be made")
	} else if !assumeYes {
		if !confirm() {
			color.Yellow("Aborted")
			return nil
		}
	}

	outcome, err := crpart.Execute(config, geometry, plan)
	if err != nil {
		return err
	}

	if !dryRun {
		printOutcome(outcome)
	}

	return nil
}

func buildRunConfig() (settings.RunConfig, error) {
	config := settings.RunConfig{
		DevicePath:      deviceFlag,
		AllowActiveDisk: allowActiveDisk,
		ForceRemovable:  forceRemovable,
		DryRun:          dryRun,
	}

	var err error
	config.RootSizeInBytes, err = sizes.Parse(rootSizeFlag)
	if err != nil {
		return settings.RunConfig{}, err
	}

	if swapSizeFlag != "" {
		config.SwapSizeInBytes, err = sizes.Parse(swapSizeFlag)
		if err != nil {
			return settings.RunConfig{}, err
		}
	}

	if varSizeFlag != "" {
		config.VarSizeInBytes, err = sizes.Parse(varSizeFlag)
		if err != nil {
			return settings.RunConfig{}, err
		}
	}

	return config, nil
}

func confirm() bool {
	color.Red("\nWARNING: this will modify the partition table of the device!")
	fmt.Print("Type 'yes' to continue: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(line) == "yes"
}
