package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/drampower/memspec"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in memory specifications.",
	Long: "`presets` lists the built-in devices. `presets --show DDR4` " +
		"prints one of them as a JSON memory specification that can be " +
		"edited and passed to `run --memspec`.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		show, _ := cmd.Flags().GetString("show")
		if show != "" {
			return showPreset(cmd.OutOrStdout(), show)
		}

		return listPresets(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().String("show", "",
		"print the specification of a protocol preset")
}

func listPresets(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "PROTOCOL\tNAME\tCLOCK (MHz)\tRANKS\tBANK GROUPS\tBANKS")

	for _, s := range memspec.Presets() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%d\t%d\t%d\n",
			s.Protocol, s.Name, s.ClockMHz, s.Ranks, s.BankGroups, s.Banks)
	}

	return tw.Flush()
}

func showPreset(w io.Writer, name string) error {
	p, err := memspec.ParseProtocol(name)
	if err != nil {
		return fmt.Errorf("%w, expected one of %s", err, presetNames())
	}

	s := memspec.Preset(p)

	return memspec.Encode(w, &s)
}

func presetNames() string {
	var names []string
	for _, s := range memspec.Presets() {
		names = append(names, s.Protocol.String())
	}

	return strings.Join(names, ", ")
}
