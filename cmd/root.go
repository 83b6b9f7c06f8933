package cmd

import (
	"fmt"
	"github.com/coronacheck/hc1dump/holder"
	"github.com/coronacheck/hc1dump/qrimage"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"strings"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hc1dump IMAGE",
		Short: "Print the claims of an EU Digital COVID Certificate QR code",
		Long: "Reads the QR code in a PNG, JPEG or GIF image, decodes the HC1 payload " +
			"(Base45, zlib, COSE_Sign1, CBOR) and prints the CWT claims. " +
			"The signature is not verified.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := configureHolder(cmd)
			if err != nil {
				return err
			}

			qr, err := qrimage.ReadFile(args[0])
			if err != nil {
				return err
			}

			return h.Dump([]byte(qr), cmd.OutOrStdout())
		},
	}

	setRootFlags(cmd)
	cmd.AddCommand(newDecodeCmd())

	return cmd
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		exitWithError(err)
	}
}

func setRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.SortFlags = false

	flags.String("config", "", "path to configuration file (JSON, TOML, YAML or INI)")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error, disabled)")
	flags.Bool("diagnostic", false, "print skipped values in CBOR diagnostic notation")
}

func configureHolder(cmd *cobra.Command) (*holder.Holder, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}

	err = readConfig(v)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), v.GetString("log-level"))
	if err != nil {
		return nil, err
	}

	return holder.New(&holder.Configuration{
		Diagnostic: v.GetBool("diagnostic"),
		Logger:     logger,
	}), nil
}

func readConfig(v *viper.Viper) error {
	configPath := v.GetString("config")
	if configPath == "" {
		return nil
	}

	dir, file := filepath.Dir(configPath), filepath.Base(configPath)
	v.SetConfigName(strings.TrimSuffix(file, filepath.Ext(file)))
	v.AddConfigPath(dir)

	err := v.ReadInConfig()
	if err != nil {
		msg := fmt.Sprintf("Could not read or apply config file %s", configPath)
		return errors.WrapPrefix(err, msg, 0)
	}

	return nil
}

func exitWithError(err error) {
	_, _ = fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
