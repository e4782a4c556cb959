// Command alumnictl is a terminal client for the alumni network API. It
// keeps a durable session on disk, so a login survives across invocations
// the way the web client's browser storage does.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/alumninet/alumninet-be/internal/client"
	"github.com/alumninet/alumninet-be/internal/directory"
	"github.com/alumninet/alumninet-be/internal/session"
)

const usage = `Usage: alumnictl [--server URL] <command> [flags]

Commands:
  login       Authenticate and store a session
  logout      Drop the stored session
  whoami      Show the logged-in user
  directory   List profiles, with optional filters
  profile     Show a single profile by id
  jobs        List job listings, or show one by id
`

func main() {
	globals := pflag.NewFlagSet("alumnictl", pflag.ExitOnError)
	server := globals.String("server", "http://localhost:8080", "API base URL")
	sessionPath := globals.String("session", defaultSessionPath(), "session file location")
	globals.SetInterspersed(false)
	globals.Parse(os.Args[1:])

	args := globals.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	sess := session.NewStore(*sessionPath)
	api := client.New(*server, sess)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch args[0] {
	case "login":
		err = runLogin(ctx, api, args[1:])
	case "logout":
		err = api.Logout(ctx)
		if err == nil {
			fmt.Println("Logged out.")
		}
	case "whoami":
		err = runWhoami(api)
	case "directory":
		err = runDirectory(ctx, api, args[1:])
	case "profile":
		err = runProfile(ctx, api, args[1:])
	case "jobs":
		err = runJobs(ctx, api, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s", args[0], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, api *client.Client, args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ExitOnError)
	email := flags.StringP("email", "e", "", "account email")
	flags.Parse(args)

	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	user, err := api.Login(ctx, *email, string(password))
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func runWhoami(api *client.Client) error {
	user, ok := api.CurrentUser()
	if !ok {
		return fmt.Errorf("not logged in")
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return nil
}

func runDirectory(ctx context.Context, api *client.Client, args []string) error {
	flags := pflag.NewFlagSet("directory", pflag.ExitOnError)
	query := flags.StringP("query", "q", "", "free-text search")
	year := flags.Int("year", 0, "graduation year")
	location := flags.String("location", "", "exact location")
	skills := flags.StringSlice("skill", nil, "required skill (repeatable)")
	flags.Parse(args)

	profiles, err := api.Profiles(ctx)
	if err != nil {
		return err
	}

	// Narrowing happens locally, over the full fetched collection.
	matched := directory.Filter(profiles, directory.Spec{
		Query:          *query,
		GraduationYear: *year,
		Location:       *location,
		Skills:         *skills,
	})

	if len(matched) == 0 {
		fmt.Println("No profiles found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tHEADLINE\tCLASS\tLOCATION\tSKILLS")
	for _, p := range matched {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.Headline, p.GraduationYear, p.Location, strings.Join(p.Skills, ", "))
	}
	return w.Flush()
}

func runProfile(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: alumnictl profile <id>")
	}

	p, err := api.Profile(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s\n", p.Name, p.Headline)
	fmt.Printf("Class of %d", p.GraduationYear)
	if p.Company != "" {
		fmt.Printf(" · %s", p.Company)
	}
	if p.Location != "" {
		fmt.Printf(" · %s", p.Location)
	}
	fmt.Println()
	if p.Bio != "" {
		fmt.Println()
		fmt.Println(p.Bio)
	}
	if len(p.Skills) > 0 {
		fmt.Println()
		fmt.Println("Skills:", strings.Join(p.Skills, ", "))
	}
	for _, exp := range p.Experience {
		end := exp.EndDate
		if exp.Current {
			end = "present"
		}
		fmt.Printf("\n%s at %s (%s – %s)\n  %s\n", exp.Title, exp.Company, exp.StartDate, end, exp.Description)
	}
	return nil
}

func runJobs(ctx context.Context, api *client.Client, args []string) error {
	if len(args) == 1 {
		job, err := api.Job(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s at %s — %s (%s)\n\n%s\n", job.Title, job.Company, job.Location, job.Type, job.Description)
		if len(job.Requirements) > 0 {
			fmt.Println("\nRequirements:")
			for _, req := range job.Requirements {
				fmt.Println("  -", req)
			}
		}
		return nil
	}

	jobs, err := api.Jobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No job listings.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tTYPE\tPOSTED")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Company, j.Location, j.Type, j.PostedDate)
	}
	return w.Flush()
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "alumninet", "session.json")
}
