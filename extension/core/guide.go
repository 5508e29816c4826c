// guide.go implements "docver guide", which prints the embedded help pages.
//
// A terminal gets the page rendered by glamour. Pipes get raw markdown so
// the output can be fed to other tools unchanged.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/guide"
	"github.com/jpl-au/docver/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const flagList = "list"

// guidePage is the JSON output of a single page.
type guidePage struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

func newGuideCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the docver usage guide",
		Long: `Outputs the docver guide.

  docver guide           # main guide
  docver guide rename    # how renames rewrite version paths
  docver guide config    # configuration keys
  docver guide --list    # available topics`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTopics,
		RunE:              runGuide,
	}
	c.Flags().Bool(flagList, false, "List available topics")
	return c
}

func runGuide(c *cobra.Command, args []string) error {
	if list, _ := c.Flags().GetBool(flagList); list {
		return listTopics()
	}

	topic := ""
	if len(args) > 0 {
		topic = args[0]
	}

	content, err := guide.Get(topic)
	log.Event("core:guide", "read").Author(cmd.Author()).Detail("topic", topic).Write(err)
	if err != nil {
		available, listErr := guide.List()
		if listErr != nil {
			return listErr
		}
		return cmd.PrintJSONError(fmt.Errorf("%w. Available: %s", err, strings.Join(available, ", ")))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(guidePage{Topic: topic, Content: content})
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(content, "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	fmt.Fprint(cmd.Out(), content)
	return nil
}

func listTopics() error {
	topics, err := guide.Topics()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("guide topics: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(topics)
	}
	for _, t := range topics {
		fmt.Fprintf(cmd.Out(), "%-10s %s\n", t.Name, t.Title)
	}
	return nil
}

func completeTopics(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, _ := guide.List()
	return names, cobra.ShellCompDirectiveNoFileComp
}
