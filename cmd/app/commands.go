package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/acropad/internal"
	"github.com/starford/acropad/internal/noteservice"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// oneShot loads config and hands a note service to fn. Logs go to stderr so
// stdout carries only command output.
func oneShot(fn func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc := internal.NewService(cfg, internal.NewLogger(cfg, os.Stderr))
		return fn(ctx, cmd, svc)
	}
}

func requireArg(cmd *cli.Command, what string) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one %s argument", cmd.Name, what)
	}
	return cmd.Args().First(), nil
}

func printLines(lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(stdout, l); err != nil {
			return err
		}
	}
	return nil
}

func greetCommand() *cli.Command {
	return &cli.Command{
		Name:  "greet",
		Usage: "Print the liveness string of the vault layer",
		Action: oneShot(func(_ context.Context, _ *cli.Command, svc *noteservice.Service) error {
			_, err := fmt.Fprintln(stdout, svc.Greet())
			return err
		}),
	}
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "List note files under a vault root, sorted",
		ArgsUsage: "[root]",
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			files, err := svc.Scan(ctx, cmd.Args().First())
			if err != nil {
				return err
			}
			return printLines(files)
		}),
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "List notes whose content contains a query, ignoring case",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "Vault root (defaults to vault.path)"},
		},
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			query, err := requireArg(cmd, "query")
			if err != nil {
				return err
			}
			files, err := svc.Search(ctx, cmd.String("root"), query)
			if err != nil {
				return err
			}
			return printLines(files)
		}),
	}
}

func readCommand() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Print a file's full text",
		ArgsUsage: "<path>",
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			path, err := requireArg(cmd, "path")
			if err != nil {
				return err
			}
			file, err := svc.ReadFile(ctx, path)
			if err != nil {
				return err
			}
			_, err = io.WriteString(stdout, file.Content)
			return err
		}),
	}
}

func saveCommand() *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Overwrite a file with --content or standard input",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "content", Usage: "New content; read from stdin when omitted"},
		},
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			path, err := requireArg(cmd, "path")
			if err != nil {
				return err
			}
			content := cmd.String("content")
			if !cmd.IsSet("content") {
				data, err := io.ReadAll(stdin)
				if err != nil {
					return fmt.Errorf("save: read stdin: %w", err)
				}
				content = string(data)
			}
			res, err := svc.SaveFile(ctx, path, content)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "saved %s (%s)\n", res.Path, res.Checksum)
			return err
		}),
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Print a note rendered to HTML",
		ArgsUsage: "<path>",
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			path, err := requireArg(cmd, "path")
			if err != nil {
				return err
			}
			out, err := svc.RenderFile(ctx, path)
			if err != nil {
				return err
			}
			_, err = io.WriteString(stdout, out.HTML)
			return err
		}),
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new note from the starter template",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Directory for the note (defaults to vault.path)"},
		},
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			if cmd.Args().Len() > 1 {
				return fmt.Errorf("%s: expected at most one name argument", cmd.Name)
			}
			res, err := svc.CreateNote(ctx, cmd.String("dir"), cmd.Args().First())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, res.Path)
			return err
		}),
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a file",
		ArgsUsage: "<path>",
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			path, err := requireArg(cmd, "path")
			if err != nil {
				return err
			}
			return svc.DeleteFile(ctx, path)
		}),
	}
}

func renameCommand() *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename a file; refuses to overwrite the destination",
		ArgsUsage: "<from> <to>",
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("%s: expected <from> and <to> arguments", cmd.Name)
			}
			res, err := svc.RenameFile(ctx, cmd.Args().Get(0), cmd.Args().Get(1))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "renamed %s -> %s\n", res.From, res.To)
			return err
		}),
	}
}

func mkdirCommand() *cli.Command {
	return &cli.Command{
		Name:      "mkdir",
		Usage:     "Create a directory and its parents",
		ArgsUsage: "<path>",
		Action: oneShot(func(ctx context.Context, cmd *cli.Command, svc *noteservice.Service) error {
			path, err := requireArg(cmd, "path")
			if err != nil {
				return err
			}
			return svc.MakeDir(ctx, path)
		}),
	}
}
