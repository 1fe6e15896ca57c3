// Command dcmstream-util tokenizes a raw DICOM data set (File Meta
// Information already stripped, per spec.md §1) and prints the resulting
// token stream. Adapted from cmd/opendcm-util/main.go's top-level command
// dispatch, zerolog console setup, and IsAPipe/check conventions.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	dcmstream "github.com/b71729/dcmstream"
)

var baseFile = filepath.Base(os.Args[0])

func check(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("check()")
	}
}

// isAPipe returns whether the given writer is attached to a pipe rather
// than a terminal, mirroring the teacher's IsAPipe.
func isAPipe(f *os.File) bool {
	fi, err := f.Stat()
	check(err)
	return (fi.Mode() & os.ModeCharDevice) == 0
}

func main() {
	if isAPipe(os.Stdout) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true})
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	tsFlag := flag.String("transfer-syntax", dcmstream.ExplicitVRLittleEndian.UID, "transfer syntax UID governing the data set")
	csFlag := flag.String("character-set", "Default", "Specific Character Set defined term")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal().Msgf("usage: %s [flags] <path-to-raw-dataset>", baseFile)
	}

	ts, known := dcmstream.LookupTransferSyntax(*tsFlag)
	if !known {
		log.Warn().Str("uid", *tsFlag).Msg("unrecognised transfer syntax UID, defaulting to Explicit VR Little Endian")
	}

	f, err := os.Open(flag.Arg(0))
	check(err)
	defer f.Close()

	reader := dcmstream.NewDataSetReader(f, dcmstream.Options{
		TransferSyntax: ts,
		CharacterSet:   *csFlag,
	})

	depth := 0
	for {
		tok, err, ok := reader.Next()
		if !ok {
			break
		}
		if err != nil {
			log.Fatal().Err(err).Msg("tokenizing data set")
		}
		if tok.Kind == dcmstream.TokenSequenceEnd || tok.Kind == dcmstream.TokenItemEnd {
			depth--
		}
		fmt.Println(indent(depth) + tok.String())
		if tok.Kind == dcmstream.TokenSequenceStart || tok.Kind == dcmstream.TokenItemStart {
			depth++
		}
	}
}

func indent(n int) string {
	out := make([]byte, n*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
