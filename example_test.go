// These examples verify the README code samples compile correctly.
// Apart from Example_fromReader they are not run as actual tests,
// since they require report files on disk.

package harvest_test

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tsawler/harvest"
	"github.com/tsawler/harvest/config"
	"github.com/tsawler/harvest/metfile"
	"github.com/tsawler/harvest/tables"
)

func Example_loadDirectory() {
	table, warnings, err := harvest.Dir("simulations").Table()
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range warnings {
		fmt.Println(w)
	}

	_ = table.NumRows()
}

func Example_loadWithOptions() {
	table, _, err := harvest.Dir("simulations").
		Filter("wheat*.out").
		Fill().
		ContinueOnError().
		Table()
	if err != nil {
		log.Fatal(err)
	}

	_ = table
}

func Example_singleFile() {
	table, _, err := harvest.Open("simulations/wheat.out").Table()
	if err != nil {
		log.Fatal(err)
	}

	yield := table.Column("yield")
	_ = yield.Floats()
}

func Example_fromReader() {
	report := "Date yield\n(dd/mm/yyyy) (kg/ha)\n01/01/1990 800.2\n"

	table, _, err := harvest.FromReader(strings.NewReader(report), "mem.out").Table()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(table.NumRows())
	// Output: 1
}

func Example_extractToken() {
	table, _, err := harvest.Dir("simulations").Table()
	if err != nil {
		log.Fatal(err)
	}

	// Simulation names like "exp1;goond;100" split on ";".
	if err := tables.ExtractToken(table, "Simulation", ";", 2, "met"); err != nil {
		log.Fatal(err)
	}

	_ = table.Column("met")
}

func Example_weatherFile() {
	r, err := metfile.Open("weather/goond.met")
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	for _, c := range r.Header().Constants {
		fmt.Printf("%s = %s\n", c.Key, c.Value)
	}

	table, err := r.Table()
	if err != nil {
		log.Fatal(err)
	}
	_ = table
}

func Example_configFile() {
	loader, err := config.Load("harvest.toml")
	if err != nil {
		log.Fatal(err)
	}

	frame, warnings, err := loader.Frame()
	if err != nil {
		log.Fatal(err)
	}
	_ = warnings
	_ = frame.Rows
}

func Example_writeCSV() {
	table, _, err := harvest.Dir("simulations").Fill().Table()
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create("merged.csv")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := table.WriteCSV(f); err != nil {
		log.Fatal(err)
	}
}
