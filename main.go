// ABOUTME: Entry point for the personal CRM server, MCP server, and CLI
// ABOUTME: Routes to serve, mcp, or crm commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gosslou/carnet/cli"
	"github.com/gosslou/carnet/config"
	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/web"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/carnet/crm.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("carnet version %s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "serve":
		database, err := db.OpenDatabase(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		server, err := web.NewServer(database, cfg)
		if err != nil {
			log.Fatalf("Failed to create server: %v", err)
		}
		if err := server.Start(cfg.Host, cfg.Port); err != nil {
			log.Fatalf("Server failed: %v", err)
		}

	case "mcp":
		database, err := db.OpenDatabase(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		if err := cli.MCPCommand(database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "crm":
		database, err := db.OpenDatabase(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		log.Printf("CRM database: %s", cfg.DatabasePath)

		if *initOnly {
			log.Println("Database initialized successfully")
			os.Exit(0)
		}

		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		crmCommand := commandArgs[0]
		crmArgs := commandArgs[1:]

		switch crmCommand {
		case "add-contact":
			if err := cli.AddContactCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list-contacts":
			if err := cli.ListContactsCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "update-contact":
			if err := cli.UpdateContactCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "delete-contact":
			if err := cli.DeleteContactCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "add-note":
			if err := cli.AddNoteCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "briefing":
			if err := cli.BriefingCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown crm command: %s\n\n", crmCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`carnet v%s - Personal CRM

USAGE:
  carnet [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/carnet/crm.db)
  --init                 Initialize database and exit (use with 'crm')

COMMANDS:
  serve                  Start the web server (API + frontend)
  mcp                    Start MCP server for Claude Desktop
  crm                    CRM management commands

WEB SERVER:
  carnet serve           Start the web app (HOST/PORT from environment, default :5000)

MCP SERVER:
  carnet mcp             Start MCP server (for Claude Desktop integration)

CRM COMMANDS:
  carnet crm add-contact     Add a new contact
    --nom <nom>                Last name (required)
    --prenom <prenom>          First name
    --categorie <cat>          famille, ami, pro, or autre (default: autre)
    --societe <societe>        Company
    --poste <poste>            Job title
    --ville <ville>            City

  carnet crm list-contacts   List contacts
    --query <text>             Search by name or informations
    --categorie <cat>          Filter by category

  carnet crm update-contact [flags] <id>  Update an existing contact
    --nom <nom>                Last name
    --prenom <prenom>          First name
    --categorie <cat>          Category
    Note: flags must come before the contact ID

  carnet crm delete-contact <id>  Delete a contact

  carnet crm add-note <id> <text...>  Append a note to a contact

  carnet crm briefing <id>   Print the pre-meeting briefing

EXAMPLES:
  # Start the web app
  carnet serve

  # Add a contact
  carnet crm add-contact --nom "Martin" --prenom "Alice" --categorie pro --societe "Acme"

  # Log a promise
  carnet crm add-note 1 "Je dois lui envoyer le contrat"

  # Prepare a meeting
  carnet crm briefing 1

`, version)
}
