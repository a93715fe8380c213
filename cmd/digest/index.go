package cmd

import (
	"io"

	digest "github.com/kmertools/digest"
	digestindex "github.com/kmertools/digest/index"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build a minimizer-presence signature index across many sequences",
	Long: `index digests every input record with WindowMinimizer and records, for
each of --num-buckets hash buckets, which records produced a minimizer
landing in that bucket (bucket = hash % num-buckets). The resulting
signature supports fast approximate containment queries without storing
every minimizer hash.
`,
	Run: func(cmd *cobra.Command, args []string) {
		k := getFlagInt(cmd, "kmer-len")
		w := getFlagInt(cmd, "window")
		numSigs := uint64(getFlagInt(cmd, "num-buckets"))
		if numSigs == 0 {
			checkError(errors.New("--num-buckets must be positive"))
		}

		files := getFileList(cmd, args)

		// First pass: digest every record, remembering which bucket(s)
		// each one touches. The row bitset needs the final record count
		// up front, so rows are filled in after this pass.
		var names []string
		type hit struct {
			record int
			bucket uint64
		}
		var hits []hit

		for _, file := range files {
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
				recordIdx := len(names)
				names = append(names, string(record.Name))

				d, err := digest.Construct(digest.SchemeWindowMinimizer, record.Seq.Seq, k, 0, digest.MinimizedCanonical, digest.Params{Window: w})
				if err != nil {
					log.Warningf("%s: skipping %s: %s", file, record.Name, err)
					continue
				}
				seen := make(map[uint64]struct{})
				for {
					ok, err := d.RollNextMinimizer()
					checkError(err)
					if !ok {
						break
					}
					bucket := d.GetCanonicalHash() % numSigs
					if _, dup := seen[bucket]; dup {
						continue
					}
					seen[bucket] = struct{}{}
					hits = append(hits, hit{record: recordIdx, bucket: bucket})
				}
			}
		}

		nRowBytes := (len(names) + 7) / 8
		rows := make([][]byte, numSigs)
		for i := range rows {
			rows[i] = make([]byte, nRowBytes)
		}
		for _, h := range hits {
			rows[h.bucket][h.record/8] |= 1 << uint(h.record%8)
		}

		outFile := getFlagString(cmd, "out-file")
		out, err := outStream(outFile)
		checkError(err)
		defer out.Close()

		writer, err := digestindex.NewWriter(out, k, true, 1, numSigs, names)
		checkError(err)
		for _, row := range rows {
			checkError(writer.Write(row))
		}
		checkError(writer.Flush())

		if getFlagBool(cmd, "verbose") {
			log.Infof("indexed %d records into %d buckets", len(names), numSigs)
		}
	},
}

func init() {
	RootCmd.AddCommand(indexCmd)

	indexCmd.Flags().IntP("kmer-len", "k", 21, "k-mer length")
	indexCmd.Flags().IntP("window", "w", 11, "WindowMinimizer window size, in k-mers")
	indexCmd.Flags().IntP("num-buckets", "n", 4096, "number of hash buckets in the signature")
	indexCmd.Flags().StringP("out-file", "o", "-", `output file ("-" for stdout)`)
	indexCmd.Flags().StringP("infile-list", "i", "", "file of input files list (one file per line)")
}
