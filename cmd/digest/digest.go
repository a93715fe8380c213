package cmd

import (
	"io"

	"github.com/dustin/go-humanize"
	digest "github.com/kmertools/digest"
	"github.com/kmertools/digest/internal/binfmt"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Digest FASTA/FASTQ sequences into a minimizer sketch",
	Long: `digest reads one or more FASTA/FASTQ files and reports the minimizer
sketch of every record using the chosen scheme (mod, window, or syncmer).

Records are fed to the digester record by record: each record is a fresh
NewSeq call, so minimizers never span a sequence boundary.
`,
	Run: func(cmd *cobra.Command, args []string) {
		k := getFlagInt(cmd, "kmer-len")
		if k <= 0 {
			checkError(errors.New("-k/--kmer-len must be positive"))
		}
		scheme := getFlagString(cmd, "scheme")
		canonical := !getFlagBool(cmd, "no-canonical")
		minimizedH := digest.MinimizedCanonical
		if !canonical {
			minimizedH = digest.MinimizedForward
		}

		params := digest.Params{
			Modulus: getFlagUint64(cmd, "modulus"),
			Window:  getFlagInt(cmd, "window"),
			SmallK:  getFlagInt(cmd, "small-kmer-len"),
			Offset:  digest.SyncmerOffsetEither,
		}

		var schemeID digest.Scheme
		var binSchemeID binfmt.Scheme
		switch scheme {
		case "mod":
			schemeID, binSchemeID = digest.SchemeModMinimizer, binfmt.SchemeModMinimizer
		case "window":
			schemeID, binSchemeID = digest.SchemeWindowMinimizer, binfmt.SchemeWindowMinimizer
		case "syncmer":
			schemeID, binSchemeID = digest.SchemeSyncmer, binfmt.SchemeSyncmer
		default:
			checkError(errors.Errorf("unknown scheme %q, must be one of mod, window, syncmer", scheme))
		}

		outFile := getFlagString(cmd, "out-file")
		out, err := outStream(outFile)
		checkError(err)
		defer out.Close()

		verbose := getFlagBool(cmd, "verbose")
		files := getFileList(cmd, args)

		source := "multiple sources"
		if len(files) == 1 {
			source = files[0]
		}
		w := binfmt.NewWriter(out, k, binSchemeID, canonical, source)

		var totalRecords, totalMinimizers uint64
		for _, file := range files {
			if verbose {
				log.Infof("digesting %s", file)
			}
			reader, err := fastx.NewDefaultReader(file)
			checkError(errors.Wrap(err, file))

			for {
				record, err := reader.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					checkError(errors.Wrap(err, file))
				}
				totalRecords++

				d, err := digest.Construct(schemeID, record.Seq.Seq, k, 0, minimizedH, params)
				if err != nil {
					log.Warningf("%s: skipping %s: %s", file, record.Name, err)
					continue
				}

				for {
					ok, err := d.RollNextMinimizer()
					checkError(err)
					if !ok {
						break
					}
					checkError(w.Write(binfmt.Record{Pos: d.GetPos(), Hash: d.GetCanonicalHash()}))
					totalMinimizers++
				}
			}
		}

		if verbose {
			log.Infof("digested %s records, reported %s minimizers",
				humanize.Comma(int64(totalRecords)), humanize.Comma(int64(totalMinimizers)))
		}
	},
}

func init() {
	RootCmd.AddCommand(digestCmd)

	digestCmd.Flags().IntP("kmer-len", "k", 21, "k-mer length")
	digestCmd.Flags().StringP("scheme", "s", "window", "selection scheme: mod, window, or syncmer")
	digestCmd.Flags().Uint64P("modulus", "M", 16, "ModMinimizer modulus")
	digestCmd.Flags().IntP("window", "w", 11, "WindowMinimizer window size (in k-mers)")
	digestCmd.Flags().IntP("small-kmer-len", "S", 9, "Syncmer small-mer length (must be < -k)")
	digestCmd.Flags().BoolP("no-canonical", "", false, "use the forward-strand hash instead of the canonical one")
	digestCmd.Flags().StringP("out-file", "o", "-", `output file ("-" for stdout), ".gz" suffix gzip-compresses`)
	digestCmd.Flags().StringP("infile-list", "i", "", "file of input files list (one file per line)")
}
