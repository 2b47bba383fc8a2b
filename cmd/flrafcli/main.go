package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

func main() {
	var serverFlag = flag.String("server", "127.0.0.1:8081", "host:port of the flrafd server")
	flag.Parse()

	fmt.Println("flraf - persistent B-tree key membership store")
	fmt.Println("Type 'help' for available commands")
	fmt.Printf("Using remote server: %s\n", *serverFlag)

	rc := &RemoteClient{Addr: *serverFlag}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFile(),
	})
	if err != nil {
		fmt.Printf("Error starting readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printHelp()
		case "add":
			if len(parts) != 2 {
				fmt.Println("Usage: add <key>")
				continue
			}
			runCommand(rc, parts[1])
		case "remove":
			if len(parts) != 2 {
				fmt.Println("Usage: remove <key>")
				continue
			}
			runCommand(rc, "-"+parts[1])
		case "close":
			runCommand(rc, "?")
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", parts[0])
			printHelp()
		}
	}
}

func runCommand(rc *RemoteClient, token string) {
	reply, err := rc.Do(token)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(reply)
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.flrafcli_history"
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  add <key>       - Add a key to the store")
	fmt.Println("  remove <key>    - Remove a key from the store")
	fmt.Println("  close           - Close the tree (next request reopens it)")
	fmt.Println("  help            - Show this help message")
	fmt.Println("  exit, quit      - Exit the program")
}
