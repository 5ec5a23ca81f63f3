// Command artbench reads lines from a file, deduplicates each line against
// the one immediately before it, inserts the survivors into a Tree, and
// reports throughput. It exists only to give the core a runnable entry
// point; it carries no logic the core itself is responsible for.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/siara-cc/libart"
)

func main() {
	path := flag.String("file", "", "path to a newline-delimited input file")
	flag.Parse()

	if *path == "" {
		log.Fatal("artbench: -file is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("artbench: %v", err)
	}
	defer f.Close()

	tree := art.NewTree[int]()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var prev string
	var lineNo int
	start := time.Now()

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++
		if line == prev {
			continue
		}
		prev = line
		_, _ = tree.Insert(art.Key(line), lineNo)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("artbench: %v", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("lines=%d inserted=%d elapsed=%s rate=%.0f inserts/s size_in_bytes=%d\n",
		lineNo, tree.Size(), elapsed, float64(tree.Size())/elapsed.Seconds(), tree.SizeInBytes())
}
