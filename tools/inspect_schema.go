package main

import (
	"fmt"
	"io/fs"
	"log"
	"path"

	"github.com/localnerve/expiestack/data"
	"github.com/localnerve/expiestack/internal/schema"
)

func main() {
	// Compile everything first so a broken schema fails loudly
	validator, err := schema.New()
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range validator.Names() {
		fmt.Printf("\n=== Schema: %s ===\n", name)
		raw, err := fs.ReadFile(data.Schemas, path.Join("schemas", name+".json"))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(raw))

		// An empty body shows the required fields
		if err := validator.Validate(name, nil); err != nil {
			fmt.Printf("empty body: %v\n", err)
		}
	}
}
