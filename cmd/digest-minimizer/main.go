// Command digest-minimizer digests DNA sequences into minimizer sketches.
package main

import "github.com/kmertools/digest/cmd/digest"

func main() {
	cmd.Execute()
}
