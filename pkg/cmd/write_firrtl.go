// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-firrtl/pkg/firrtl"
	"github.com/consensys/go-firrtl/pkg/netlist"
)

var writeFirrtlCmd = &cobra.Command{
	Use:   "write-firrtl [flags] netlist_file",
	Short: "lower a netlist interchange file into FIRRTL text.",
	Long: `Read a design expressed in the JSON netlist interchange format and lower it
	 into FIRRTL circuit text, written to the given output file (or stdout).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		verbose := GetFlag(cmd, "verbose")
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		design := ReadNetlistFile(args[0])

		if top := GetString(cmd, "top"); top != "" {
			if _, ok := design.Module(top); !ok {
				fmt.Printf("no such module %q\n", top)
				os.Exit(2)
			}

			design.SetTop(top)
		}

		tr := firrtl.NewTranslatorWithConfig(design, firrtl.TranslationConfig{Verbose: verbose})

		output := GetString(cmd, "output")
		if output == "" {
			if err := tr.Translate(os.Stdout); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			return
		}

		WriteFirrtlFile(tr, output)
	},
}

// ReadNetlistFile reads and parses a JSON netlist interchange file from disk.
func ReadNetlistFile(filename string) *netlist.Design {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	defer f.Close()

	design, err := netlist.LoadDesignJSON(f)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return design
}

// WriteFirrtlFile lowers the translator's design and writes the resulting
// FIRRTL text to filename.
func WriteFirrtlFile(tr *firrtl.Translator, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	defer f.Close()

	if err := tr.Translate(f); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(writeFirrtlCmd)
	writeFirrtlCmd.Flags().StringP("output", "o", "", "specify output file (defaults to stdout).")
	writeFirrtlCmd.Flags().String("top", "", "override the design's top module.")
}
