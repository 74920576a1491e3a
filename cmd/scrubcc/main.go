// Copyright 2025 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/EngFlow/scrub_cc/cpp"
	"github.com/EngFlow/scrub_cc/internal/collections"
	"github.com/EngFlow/scrub_cc/internal/source"
	"github.com/EngFlow/scrub_cc/options"
	"github.com/EngFlow/scrub_cc/tags"
)

// Streams the scrubbed form of each matched source file to stdout, or with
// -tags lists the macro tags discovered while scrubbing. Arguments are
// doublestar glob patterns, e.g. 'src/**/*.{c,h}'.
func main() {
	configPath := flag.String("config", "", "Path to a YAML options file")
	printTags := flag.Bool("tags", false, "Print discovered macro tags instead of the scrubbed stream")
	braceFormat := flag.Bool("brace-format", false, "Assume block structure is determined by brace matching")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("Program requires at least 1 argument - a glob pattern selecting source files. Flags need to be defined before arguments")
	}

	opts := options.Default()
	if *configPath != "" {
		loaded, err := options.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load options: %v", err)
		}
		opts = loaded
	}

	files := collections.SetOf[string]()
	for _, pattern := range flag.Args() {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			log.Fatalf("Invalid glob pattern %q: %v", pattern, err)
		}
		files.AddSlice(matches)
	}

	collector := &tags.Collector{}
	scrubber := cpp.New(opts, collector)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, path := range files.SortedValues(strings.Compare) {
		reader, err := source.Open(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}
		cfg := configFor(path)
		cfg.BraceFormat = *braceFormat
		scrubber.Init(reader, cfg)
		if !*printTags {
			streamFile(out, scrubber)
		} else {
			for cpp.EOF != scrubber.Getc() {
			}
		}
	}
	scrubber.Terminate()

	if *printTags {
		for _, e := range collector.Entries {
			line := fmt.Sprintf("%s\t%s\t%d\t%c", e.Name, e.File, e.Line, e.Kind)
			if e.Signature != "" {
				line += "\t" + e.Signature
			}
			fmt.Fprintln(out, line)
		}
	}
}

// streamFile drains the scrubber, rendering literal sentinels back as bare
// quote pairs so the output stays printable.
func streamFile(out *bufio.Writer, scrubber *cpp.Scrubber) {
	for {
		c := scrubber.Getc()
		if c == cpp.EOF {
			return
		}
		switch c {
		case cpp.StringSymbol:
			out.WriteString(`""`)
		case cpp.CharSymbol:
			out.WriteString("''")
		default:
			out.WriteByte(byte(c))
		}
	}
}

// configFor selects the lexical features to enable from the file
// extension: raw literals for C++, at-literals for Objective-C.
func configFor(path string) cpp.Config {
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case "cpp", "cc", "cxx", "c++", "hpp", "hh", "hxx", "h++":
		return cpp.Config{RawLiteralStrings: true}
	case "m":
		return cpp.Config{AtLiteralStrings: true}
	case "mm":
		return cpp.Config{AtLiteralStrings: true, RawLiteralStrings: true}
	default:
		return cpp.Config{}
	}
}
