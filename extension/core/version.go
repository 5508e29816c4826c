// version.go implements "docver version".

package core

import (
	"fmt"
	"strings"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/version"
	"github.com/spf13/cobra"
)

const flagShort = "short"

// versionOutput is the JSON form of "docver version".
type versionOutput struct {
	version.Info
	Extensions []string `json:"extensions"`
}

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print build information: version tag, build time, git commit, Go
version, platform and the bundled SQLite driver version.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if short, _ := c.Flags().GetBool(flagShort); short {
				if cmd.JSON() {
					return cmd.PrintJSON(map[string]string{"version": version.Short()})
				}
				fmt.Fprintln(cmd.Out(), version.Short())
				return nil
			}
			info := version.Get()
			exts := extension.Names()
			if cmd.JSON() {
				return cmd.PrintJSON(versionOutput{Info: info, Extensions: exts})
			}
			fmt.Fprint(cmd.Out(), info.String())
			fmt.Fprintf(cmd.Out(), "Extensions: %s\n", strings.Join(exts, ", "))
			return nil
		},
	}
	c.Flags().Bool(flagShort, false, "Print only the version tag")
	return c
}
