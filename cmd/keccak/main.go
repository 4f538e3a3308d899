package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/indexsupply/ethabi/abi"
	"github.com/indexsupply/ethabi/eth"
	"github.com/indexsupply/ethabi/isxhash"
)

func check(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// keccak [-s signature] [hex]
//
// Hashes hex from the first argument or stdin.
// With -s the function signature is parsed and its
// canonical form, hash, and selector are printed.
func main() {
	var sig string
	flag.StringVar(&sig, "s", "", "function signature. eg transfer(address,uint)")
	flag.Parse()

	if sig != "" {
		f, err := abi.ParseSignature(sig)
		check(err)
		s := f.Signature()
		sel := f.Selector()
		fmt.Printf("%s\n%x\n%x\n", s, isxhash.Keccak([]byte(s)), sel)
		return
	}

	switch flag.NArg() {
	case 0:
		input, err := io.ReadAll(os.Stdin)
		check(err)
		b, err := eth.DecodeHexTrim(string(input))
		if err != nil {
			fmt.Println("unable to hex decode stdin")
			os.Exit(1)
		}
		fmt.Printf("%x\n", isxhash.Keccak(b))
	case 1:
		b, err := eth.DecodeHex(flag.Arg(0))
		if err != nil {
			fmt.Println("unable to hex decode argument")
			os.Exit(1)
		}
		fmt.Printf("%x\n", isxhash.Keccak(b))
	default:
		fmt.Println("keccak reads from stdin or through first argument")
		os.Exit(1)
	}
}
