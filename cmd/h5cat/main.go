// Command h5cat lists and reads datasets in HDF5 containers.
//
// Usage:
//
//	h5cat info <file>
//	h5cat read [-start 1,0] [-stop 5,3] <file> <dataset>
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robert-malhotra/hdf5cat/catalog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "read":
		err = runRead(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "h5cat: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: h5cat info <file>")
	fmt.Fprintln(os.Stderr, "       h5cat read [-start N,N,...] [-stop N,N,...] <file> <dataset>")
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("info: expected one file argument")
	}

	c, err := catalog.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer c.Close()

	for _, comp := range c.Info() {
		fmt.Printf("%-40s %-10s %v\n", comp.Path, comp.Type, comp.Shape)
	}
	return nil
}

func runRead(args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	startFlag := fs.String("start", "", "comma-separated per-dimension start offsets")
	stopFlag := fs.String("stop", "", "comma-separated per-dimension stop bounds (exclusive)")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("read: expected file and dataset arguments")
	}

	start, err := parseVector(*startFlag)
	if err != nil {
		return fmt.Errorf("read: -start: %w", err)
	}
	stop, err := parseVector(*stopFlag)
	if err != nil {
		return fmt.Errorf("read: -stop: %w", err)
	}

	c, err := catalog.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer c.Close()

	val, err := c.ReadRange(fs.Arg(1), start, stop)
	if err != nil {
		return err
	}

	fmt.Printf("shape=%v type=%s\n", val.Shape, val.Type)
	fmt.Println(val.Data)
	return nil
}

func parseVector(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad element %q", p)
		}
		out[i] = v
	}
	return out, nil
}
