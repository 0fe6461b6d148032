package cmd

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newMetadataCmd(a *app) *cobra.Command {
	metadataCmd := &cobra.Command{
		Use:   "metadata",
		Short: "Prints the package metadata",
		Long: `Prints the metadata of the coala-quickstart distribution including the requirements
read from requirements.txt and test-requirements.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				encoder := yaml.NewEncoder(out)
				encoder.SetIndent(2)
				err = encoder.Encode(a.pkg)
				if err != nil {
					return eris.Wrap(err, "failed to encode metadata")
				}

				return encoder.Close()
			case "json":
				data, err := json.MarshalIndent(a.pkg, "", "  ")
				if err != nil {
					return eris.Wrap(err, "failed to encode metadata")
				}

				_, err = out.Write(append(data, '\n'))
				return err
			default:
				return eris.Errorf("unsupported format %s", format)
			}
		},
	}

	metadataCmd.Flags().StringP("format", "f", "yaml", "output format (yaml or json)")
	return metadataCmd
}
