/*
Minnowc runs the Minnow compiler front end on a source file.

It builds the language grammar, its FIRST/FOLLOW sets and the LL(1) parse
table once at startup, then presents a menu of front-end actions: printing
the source with comments stripped, printing the token stream, parsing the
source and writing the parse tree to the output file, and parsing with a
wall-clock time report. The menu is read from stdin until "0" or end of
input.

Usage:

	minnowc [flags] <source_file> <output_file>

The flags are:

	-v, --version
		Give the current version of minnow and then exit.

	-g, --grammar FILE
		Load the grammar from the provided TOML grammar file instead of
		using the embedded one.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading menu input even if launched in
		a tty with stdin and stdout.

	-c, --choice N
		Immediately run the given menu choice and exit instead of entering
		the interactive menu.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dekarrin/minnow"
	"github.com/dekarrin/minnow/internal/input"
	"github.com/dekarrin/minnow/internal/version"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitRunError indicates an unsuccessful program execution due to a
	// problem while executing a menu action.
	ExitRunError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the front end.
	ExitInitError
)

const menuText = `
What would you like to do?
  0) Exit
  1) Remove Comments (print cleaned source)
  2) Print Token Stream
  3) Parse Source Code and Print Parse Tree
  4) Parse Source Code and Report Time Taken
`

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile *string = pflag.StringP("grammar", "g", "", "Load the grammar from the given TOML file instead of the embedded one")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	startChoice *string = pflag.StringP("choice", "c", "", "Execute the given menu choice immediately and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <source_file> <output_file>\n", os.Args[0])
		returnCode = ExitInitError
		return
	}
	sourceFile, outputFile := args[0], args[1]

	var fe *minnow.FrontEnd
	var initErr error
	if *grammarFile != "" {
		fe, initErr = minnow.NewFromGrammarFile(*grammarFile)
	} else {
		fe = minnow.New()
	}
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}

	if *startChoice != "" {
		if err := runChoice(fe, *startChoice, sourceFile, outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitRunError
		}
		return
	}

	reader := makeChoiceReader()
	defer reader.Close()

	for {
		fmt.Print(menuText)

		choice, err := reader.ReadChoice()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitRunError
			return
		}

		if choice == "0" {
			return
		}

		if err := runChoice(fe, choice, sourceFile, outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		}
	}
}

// makeChoiceReader selects readline-based input when possible, falling back
// to direct stdin reads when forced to or when readline cannot initialize.
func makeChoiceReader() input.ChoiceReader {
	if !*forceDirect {
		icr, err := input.NewInteractiveReader("==> ")
		if err == nil {
			return icr
		}
	}
	return input.NewDirectReader(os.Stdin)
}

// runChoice executes one menu action against the source and output files.
func runChoice(fe *minnow.FrontEnd, choice, sourceFile, outputFile string) error {
	n, err := strconv.Atoi(choice)
	if err != nil || n < 0 || n > 4 {
		fmt.Println("Invalid choice. Please enter 0-4.")
		return nil
	}

	switch n {
	case 0:
		return nil

	case 1:
		fmt.Println("---- Cleaned Source (no comments) ----")
		if err := fe.CleanSource(sourceFile, os.Stdout); err != nil {
			return err
		}
		fmt.Println("--------------------------------------")
		fmt.Println()

	case 2:
		fmt.Println("---- Token Stream ----")
		if err := fe.TokenListing(sourceFile, os.Stdout); err != nil {
			return err
		}
		fmt.Println("----------------------")
		fmt.Println()

	case 3:
		outFP, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("open output file: %w", err)
		}
		defer outFP.Close()

		fmt.Println("Parsing...")
		root, _, err := fe.Parse(sourceFile)
		if err != nil {
			return err
		}
		fe.WriteParseTree(root, outFP)
		fmt.Printf("Parse tree written to: %s\n\n", outputFile)

	case 4:
		fmt.Println("Parsing...")
		_, _, elapsed, err := fe.ParseTimed(sourceFile)
		if err != nil {
			return err
		}
		fmt.Println("Parsing complete.")
		fmt.Printf("Time (sec)  : %.6f\n\n", elapsed.Seconds())
	}

	return nil
}
