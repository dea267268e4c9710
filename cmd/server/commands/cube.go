package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/R3MiX9002/my-gemini-app/internal/geometry"
)

var cubeJSON bool

func NewCubeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cube",
		Short: "Print the unit cube's vertices and faces",
		Long: `Print the eight vertices and six faces of a unit cube centred on
the origin.

Examples:
  my-gemini-app cube
  my-gemini-app cube --json`,
		Args: cobra.NoArgs,
		RunE: runCube,
	}
	cmd.Flags().BoolVar(&cubeJSON, "json", false, "Print as JSON")
	return cmd
}

func runCube(cmd *cobra.Command, args []string) error {
	cube := geometry.NewCube()
	if cubeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cube)
	}
	_, err := cube.WriteTo(cmd.OutOrStdout())
	return err
}
