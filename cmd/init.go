package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doxynav/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize doxynav configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure doxynav for your project and writes the config file (.doxynav.yml unless --config says otherwise).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
