package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gophertree/flrafbtree/db"
)

const (
	defaultDataDir   = "."
	defaultStoreName = "store"
)

func main() {
	fmt.Println("flraf - persistent B-tree key membership store")
	fmt.Println("Type 'help' for available commands")

	// Open the store
	store, err := db.Open(db.Options{
		DataDir:   defaultDataDir,
		Name:      defaultStoreName,
		Order:     8,
		NodeSize:  256,
		CacheSize: 4,
	})
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Start the REPL
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		switch cmd {
		case "help":
			printHelp()
		case "add":
			if len(parts) != 2 {
				fmt.Println("Usage: add <key>")
				continue
			}
			added, err := store.Add(parts[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			if added {
				fmt.Println("OK")
			} else {
				fmt.Println("Already present")
			}
		case "remove":
			if len(parts) != 2 {
				fmt.Println("Usage: remove <key>")
				continue
			}
			removed, err := store.Remove(parts[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			if removed {
				fmt.Println("OK")
			} else {
				fmt.Println("Not present")
			}
		case "contains":
			if len(parts) != 2 {
				fmt.Println("Usage: contains <key>")
				continue
			}
			present, err := store.Contains(parts[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("%v\n", present)
		case "size":
			size, err := store.SizeInBytes()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("%d bytes\n", size)
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
			printHelp()
		}
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  add <key>              - Add a key")
	fmt.Println("  remove <key>           - Remove a key")
	fmt.Println("  contains <key>         - Test key membership")
	fmt.Println("  size                   - Show the tree's on-disk size")
	fmt.Println("  help                   - Show this help message")
	fmt.Println("  exit, quit             - Exit the program")
}
