package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/Yemiez/ysen/lang"
)

// fileSourceReader satisfies lang.SourceReader by reading named as a path
// relative to the working directory.
type fileSourceReader struct{}

func (fileSourceReader) ReadSource(name string) (string, bool, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "reading %q", name)
	}
	return string(b), true, nil
}

var debug bool

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	os.Exit(1)
}

func main() {
	var err error
	defer func() { atExit(err) }()

	flag.BoolVar(&debug, "debug", false, "print full error cause chains")
	flag.Parse()

	env, envErr := lang.New(lang.WithSourceReader(fileSourceReader{}), lang.WithOutput(os.Stdout))
	if envErr != nil {
		err = envErr
		return
	}

	if path := flag.Arg(0); path != "" {
		result, found, fileErr := env.EvalFile(path)
		if fileErr != nil {
			err = fileErr
			return
		}
		if !found {
			err = errors.Errorf("%q: no such file", path)
			return
		}
		fmt.Println(result.Formatted())
		return
	}

	err = repl(env)
}

func repl(env *lang.ScriptEnvironment) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := env.Eval(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(v.Formatted())
	}
	return scanner.Err()
}
