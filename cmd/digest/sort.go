package cmd

import (
	"io"
	"os"

	digest "github.com/kmertools/digest"
	"github.com/kmertools/digest/internal/binfmt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort a digested minimizer file by hash",
	Long: `sort reads a binfmt minimizer file written by "digest" and rewrites
it with records ordered by hash (then position on ties), the order a
compact hash-bucketed index groups records in.
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			checkError(errors.New("sort takes exactly one input file"))
		}
		in, err := os.Open(args[0])
		checkError(err)
		defer in.Close()

		reader, err := binfmt.NewReader(in)
		checkError(err)

		var recs digest.PosHashSlice
		for {
			rec, err := reader.Read()
			if err != nil {
				if err == io.EOF {
					break
				}
				checkError(err)
			}
			recs = append(recs, digest.NewPosHash(rec.Pos, rec.Hash))
		}
		digest.SortByHash(recs)

		outFile := getFlagString(cmd, "out-file")
		out, err := outStream(outFile)
		checkError(err)
		defer out.Close()

		w := binfmt.NewWriter(out, reader.K, reader.Scheme, reader.Canonical, reader.Source)
		for _, r := range recs {
			checkError(w.Write(binfmt.Record{Pos: r.Pos(), Hash: r.Hash()}))
		}

		if getFlagBool(cmd, "verbose") {
			log.Infof("sorted %d records", len(recs))
		}
	},
}

func init() {
	RootCmd.AddCommand(sortCmd)
	sortCmd.Flags().StringP("out-file", "o", "-", `output file ("-" for stdout)`)
}
