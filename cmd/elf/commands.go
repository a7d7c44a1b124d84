package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spacemonkeygo/errors"
	"github.com/ugorji/go/codec"
	"github.com/urfave/cli"

	"elf-lang/live/internal/evaluator"
	"elf-lang/live/internal/lexer"
	"elf-lang/live/internal/live"
	"elf-lang/live/internal/parser"
)

type tokenOut struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func jsonHandle(indent int8) *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.HTMLCharsAsIs = true
	h.Indent = indent
	return h
}

// onePath returns the single file argument of a command.
func onePath(ctx *cli.Context) (string, error) {
	if len(ctx.Args()) != 1 {
		return "", BadArgs.New("%s requires exactly one path to an elf script", ctx.Command.FullName())
	}
	return ctx.Args().First(), nil
}

func readScript(ctx *cli.Context) (string, error) {
	path, err := onePath(ctx)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", Failed.Wrap(errors.IOError.Wrap(err))
	}
	return string(b), nil
}

func TokensCommandPattern(output io.Writer) cli.Command {
	return cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a script, one JSON object per line",
		ArgsUsage: "<file>",
		Action: func(ctx *cli.Context) error {
			src, err := readScript(ctx)
			if err != nil {
				return err
			}
			h := jsonHandle(0)
			for _, t := range lexer.Lex(src) {
				if err := codec.NewEncoder(output, h).Encode(tokenOut{Type: t.Type, Value: t.Lit}); err != nil {
					return Failed.Wrap(err)
				}
				output.Write([]byte{'\n'})
			}
			return nil
		},
	}
}

func AstCommandPattern(output io.Writer) cli.Command {
	return cli.Command{
		Name:      "ast",
		Usage:     "Print the syntax tree of a script as JSON",
		ArgsUsage: "<file>",
		Action: func(ctx *cli.Context) error {
			src, err := readScript(ctx)
			if err != nil {
				return err
			}
			prog, err := parser.Parse(src)
			if err != nil {
				return Failed.Wrap(err)
			}
			if err := codec.NewEncoder(output, jsonHandle(2)).Encode(prog); err != nil {
				return Failed.Wrap(err)
			}
			output.Write([]byte{'\n'})
			return nil
		},
	}
}

func RunCommandPattern(output io.Writer) cli.Command {
	return cli.Command{
		Name:      "run",
		Usage:     "Evaluate a script once and print the value of its last statement",
		ArgsUsage: "<file>",
		Action: func(ctx *cli.Context) error {
			src, err := readScript(ctx)
			if err != nil {
				return err
			}
			val, err := evaluator.New(output).EvalSource(src)
			if err != nil {
				fmt.Fprintln(output, "[Error]", live.Message(err))
				return Failed.Wrap(err)
			}
			fmt.Fprintln(output, evaluator.Format(val))
			return nil
		},
	}
}
