package kgprofile

import (
	"fmt"

	"github.com/serplens/kgprofile/pkg/mid"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <mid>",
	Short: "Encode a single MID into a Discover profile URL",
	Long: `Encode a Knowledge Graph MID such as "kg:/m/0k8z" into a candidate
Google Discover profile URL without calling the search API.

Only identifiers starting with kg:/m/ or kg:/g/ have a known profile URL
shape; anything else is reported as unsupported.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	res := mid.Resolve(args[0])

	switch res.Status {
	case mid.StatusEncoded:
		fmt.Println(res.URL)
		return nil
	case mid.StatusFormatMismatch:
		fmt.Println("MID does not match expected /m/ or /g/ format")
		return nil
	case mid.StatusRangeError:
		return res.Err
	default:
		return fmt.Errorf("unexpected status %s", res.Status)
	}
}
