// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/yourbase/initext/ini"
)

func ExampleParse() {
	const iniFile = `global=xyzzy
; Comments are kept as elements.
[server]
host=example.com
[server]
host=example.org`
	doc, err := ini.Parse(strings.NewReader(iniFile), nil)
	if err != nil {
		// handle error
	}

	fmt.Printf("Sections: %q\n", doc.SectionNames())
	fmt.Println("Global property:", doc.Value("", "global"))
	fmt.Println("First host:", doc.Value("server", "host"))
	fmt.Println("All hosts:", doc.Values("server", "host"))

	// Output:
	// Sections: ["" "server"]
	// Global property: xyzzy
	// First host: example.com
	// All hosts: [example.com example.org]
}

func ExampleDocument_SetValue() {
	doc, err := ini.Parse(strings.NewReader("[server]\nhost=example.com"), nil)
	if err != nil {
		// handle error
	}

	// Overwrite an existing value in place and add a new section.
	doc.SetValue("server", "host", "example.org")
	doc.SetValue("client", "timeout", "30")

	text, err := doc.MarshalText()
	if err != nil {
		// handle error
	}
	if _, err := os.Stdout.Write(text); err != nil {
		// handle error
	}

	// Output:
	// [server]
	// host=example.org
	// [client]
	// timeout=30
}

func ExampleDocument_MergeSections() {
	const iniFile = `[server]
host=example.com
[logging]
level=info
[server]
port=8080`
	doc, err := ini.Parse(strings.NewReader(iniFile), nil)
	if err != nil {
		// handle error
	}
	doc.MergeSections()

	text, err := doc.MarshalText()
	if err != nil {
		// handle error
	}
	if _, err := os.Stdout.Write(text); err != nil {
		// handle error
	}

	// Output:
	// [server]
	// host=example.com
	// port=8080
	// [logging]
	// level=info
}

func ExampleReader() {
	const iniFile = `key=value
[]
after=error`
	r := ini.NewReader(strings.NewReader(iniFile), nil)
	for r.Scan() {
		if err := r.Err(); err != nil {
			// Malformed lines do not stop the reader.
			fmt.Println("skipping:", err)
			continue
		}
		switch e := r.Element().(type) {
		case *ini.Property:
			fmt.Printf("%s is %q\n", e.Key, e.Value)
		}
	}

	// Output:
	// key is "value"
	// skipping: line 2: invalid section name
	// after is "error"
}

func ExampleWriter() {
	w := ini.NewWriter(os.Stdout, &ini.WriterOptions{BlankBeforeSections: true})
	w.WriteComment(" generated file")
	w.WriteProperty("global", "true")
	w.WriteSection("paths")
	w.WriteProperty("data", "/var/lib/app")
	w.Flush()

	// Output:
	// ; generated file
	// global=true
	//
	// [paths]
	// data=/var/lib/app
}
