package cmd

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/shenwei356/breader"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

func checkError(err error) {
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func getFlagString(cmd *cobra.Command, flag string) string {
	value, err := cmd.Flags().GetString(flag)
	checkError(errors.Wrap(err, flag))
	return value
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(errors.Wrap(err, flag))
	return value
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	value, err := cmd.Flags().GetBool(flag)
	checkError(errors.Wrap(err, flag))
	return value
}

func getFlagUint64(cmd *cobra.Command, flag string) uint64 {
	value, err := cmd.Flags().GetUint64(flag)
	checkError(errors.Wrap(err, flag))
	return value
}

// expandPath expands a leading ~ the way unikmer's CLI commands do
// when resolving output paths.
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	expanded, err := homedir.Expand(path)
	checkError(err)
	return expanded
}

func isStdin(path string) bool { return path == "-" }

// getFileList resolves the positional sequence-file arguments, falling
// back to --infile-list (read with shenwei356/breader, one path per
// line) when given.
func getFileList(cmd *cobra.Command, args []string) []string {
	listFile := getFlagString(cmd, "infile-list")
	if listFile == "" {
		if len(args) == 0 {
			return []string{"-"}
		}
		return args
	}

	reader, err := breader.NewDefaultBufferedReader(listFile)
	checkError(err)
	var files []string
	for chunk := range reader.Ch {
		checkError(chunk.Err)
		for _, data := range chunk.Data {
			line := strings.TrimSpace(data.(string))
			if line != "" {
				files = append(files, line)
			}
		}
	}
	return files
}

// outStream opens path for writing, gzip-compressing when path ends in
// .gz, expanding ~ and creating parent directories as needed.
func outStream(path string) (io.WriteCloser, error) {
	if isStdin(path) {
		return os.Stdout, nil
	}
	path = expandPath(path)
	dir := filepath.Dir(path)
	if ok, err := pathutil.Exists(dir); err == nil && !ok {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		return gzipWriteCloser{gzip.NewWriter(f), f}, nil
	}
	return f, nil
}

type gzipWriteCloser struct {
	gz *gzip.Writer
	f  *os.File
}

func (g gzipWriteCloser) Write(p []byte) (int, error) { return g.gz.Write(p) }
func (g gzipWriteCloser) Close() error {
	if err := g.gz.Close(); err != nil {
		return err
	}
	return g.f.Close()
}
