package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/illarion/slipper/cmd"
	"github.com/illarion/slipper/internal/config"
	"github.com/illarion/slipper/internal/core"
	"github.com/illarion/slipper/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
		return
	case "completion":
		runCompletion(os.Args[2:])
		return
	}

	env := newEnv()
	args := os.Args[2:]

	switch os.Args[1] {
	case "init":
		runInit(env, args)
	case "encrypt":
		runEncrypt(ctx, env, args)
	case "decrypt":
		runDecrypt(env, args)
	case "try":
		runTry(ctx, env, args)
	case "page":
		runPage(env, args)
	case "ls":
		runLs(ctx, env, args)
	case "rm":
		runRm(ctx, env, args)
	case "diff":
		runDiff(ctx, env, args)
	case "compact":
		runCompact(env, args)
	case "keyring":
		runKeyring(env, args)
	case "clock":
		runClock(ctx, env, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func newEnv() *cmd.Env {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()

	return &cmd.Env{
		Config:   cfg,
		Logger:   logging.New(level),
		Prompter: core.NewPrompter(),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
	}
}

func parse(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runInit(env *cmd.Env, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	parse(fs, args)

	cmd.Init(env)
}

func runEncrypt(ctx context.Context, env *cmd.Env, args []string) {
	var opts cmd.EncryptOptions
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	fs.StringVar(&opts.Name, "name", "", "Store the page under this name")
	fs.StringVar(&opts.In, "in", "", "Read plaintext from file instead of stdin")
	fs.BoolVar(&opts.Raw, "raw", false, "Use the password exactly as typed")
	fs.BoolVar(&opts.Save, "save", false, "Remember the password in the OS keyring")
	parse(fs, args)

	cmd.Encrypt(ctx, env, opts)
}

func runDecrypt(env *cmd.Env, args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	name := fs.String("name", "", "Stored page")
	hex := fs.String("hex", "", "Page ciphertext as hex")
	parse(fs, args)

	cmd.Decrypt(env, *name, *hex)
}

func runTry(ctx context.Context, env *cmd.Env, args []string) {
	fs := flag.NewFlagSet("try", flag.ExitOnError)
	name := fs.String("name", "", "Stored page")
	hex := fs.String("hex", "", "Page ciphertext as hex")
	wait := fs.Bool("wait", false, "Finish each attempt before reading the next guess")
	parse(fs, args)

	cmd.Try(ctx, env, *name, *hex, *wait)
}

func runPage(env *cmd.Env, args []string) {
	var opts cmd.PageOptions
	fs := flag.NewFlagSet("page", flag.ExitOnError)
	fs.StringVar(&opts.Name, "name", "", "Stored page")
	fs.StringVar(&opts.Hex, "hex", "", "Page ciphertext as hex")
	fs.StringVar(&opts.Out, "o", "", "Write the page to this file instead of stdout")
	fs.StringVar(&opts.Title, "title", "", "Document title")
	fs.StringVar(&opts.Prompt, "prompt", "", "Label of the password input")
	fs.BoolVar(&opts.Clock, "clock", false, "Include the c12 clock")
	fs.StringVar(&opts.WasmPath, "wasm", "", "URL of slipper.wasm")
	fs.StringVar(&opts.ExecPath, "exec", "", "URL of wasm_exec.js")
	parse(fs, args)

	cmd.Page(env, opts)
}

func runLs(ctx context.Context, env *cmd.Env, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	parse(fs, args)

	cmd.List(ctx, env)
}

func runRm(ctx context.Context, env *cmd.Env, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	parse(fs, args)

	cmd.Remove(ctx, env, fs.Args())
}

func runDiff(ctx context.Context, env *cmd.Env, args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	name := fs.String("name", "", "Stored page")
	parse(fs, args)

	if *name == "" || fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: slipper diff -name <page> <file>")
		os.Exit(1)
	}
	cmd.Diff(ctx, env, *name, fs.Arg(0))
}

func runCompact(env *cmd.Env, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	parse(fs, args)

	cmd.Compact(env)
}

func runKeyring(env *cmd.Env, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: slipper keyring <save|delete|status> <page>")
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		cmd.KeyringSave(env, args[1])
	case "delete":
		cmd.KeyringDelete(env, args[1])
	case "status":
		cmd.KeyringStatus(env, args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring command: %s\n", args[0])
		os.Exit(1)
	}
}

func runClock(ctx context.Context, env *cmd.Env, args []string) {
	fs := flag.NewFlagSet("clock", flag.ExitOnError)
	once := fs.Bool("once", false, "Print the current time and exit")
	parse(fs, args)

	cmd.Clock(ctx, env, *once)
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: slipper completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("slipper - password-gated static pages")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  slipper <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create a page store in the current directory")
	fmt.Println("  encrypt     Seal a plaintext under a password")
	fmt.Println("  decrypt     Open a page with a password")
	fmt.Println("  try         Replay guesses against a page like the browser does")
	fmt.Println("  page        Render the HTML page for a sealed page")
	fmt.Println("  ls          List stored pages")
	fmt.Println("  rm          Remove pages from the store")
	fmt.Println("  diff        Compare a page with a local file")
	fmt.Println("  compact     Compact the store to reclaim disk space")
	fmt.Println("  keyring     Manage page passwords in the OS keyring")
	fmt.Println("  clock       Show the c12 clock")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  slipper init")
	fmt.Println("  slipper encrypt -name home -in secret.txt")
	fmt.Println("  slipper page -name home -clock -o index.html")
	fmt.Println("  echo unlock | slipper try -name home")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  SLIPPER_PASSWORD     Password used instead of prompting")
	fmt.Println("  SLIPPER_STORE        Store file (default .slipper)")
	fmt.Println("  SLIPPER_LOG_LEVEL    debug, info, warn or error")
	fmt.Println("  SLIPPER_NO_KEYRING   Never use the OS keyring")
	fmt.Println()
	fmt.Println("Use 'slipper help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("slipper init")
		fmt.Println()
		fmt.Println("Creates the page store ($SLIPPER_STORE, default .slipper).")
		fmt.Println("The store keeps ciphertexts only; passwords are never written to it.")
	case "encrypt":
		fmt.Println("slipper encrypt [-name <page>] [-in <file>] [-raw] [-save]")
		fmt.Println()
		fmt.Println("Encrypts a plaintext (stdin, or -in) and prints the ciphertext as hex.")
		fmt.Println("The password is lower-cased, trimmed and loses a trailing 's', the")
		fmt.Println("same way viewer guesses are treated, unless -raw is given.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -name   Also store the page under this name")
		fmt.Println("  -in     Read plaintext from a file inside the current directory")
		fmt.Println("  -raw    Use the password exactly as typed")
		fmt.Println("  -save   Remember the password in the OS keyring (needs -name)")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  slipper encrypt -name home -in secret.txt")
		fmt.Println("  echo 'Congratulations!' | slipper encrypt")
		fmt.Println()
		fmt.Println("With piped input the password is read from the controlling terminal,")
		fmt.Println("or from SLIPPER_PASSWORD when there is none.")
	case "decrypt":
		fmt.Println("slipper decrypt (-name <page> | -hex <ciphertext>)")
		fmt.Println()
		fmt.Println("Opens a page with a password the way the browser does and prints")
		fmt.Println("the plaintext, or 'Password incorrect'.")
	case "try":
		fmt.Println("slipper try (-name <page> | -hex <ciphertext>) [-wait]")
		fmt.Println()
		fmt.Println("Treats every stdin line as the full value of the password field.")
		fmt.Println("Prints the output region whenever it changes. Without -wait,")
		fmt.Println("attempts overlap and only the latest guess reaches the output.")
	case "page":
		fmt.Println("slipper page (-name <page> | -hex <ciphertext>) [-o <file>] [-title T] [-prompt P] [-clock]")
		fmt.Println()
		fmt.Println("Renders the HTML document hosting a sealed page. The document loads")
		fmt.Println("slipper.wasm (built from ./cmd/slipper-wasm) and wasm_exec.js.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -o       Output file inside the current directory (default stdout)")
		fmt.Println("  -clock   Include the c12 clock")
		fmt.Println("  -wasm    URL of slipper.wasm")
		fmt.Println("  -exec    URL of wasm_exec.js")
	case "ls":
		fmt.Println("slipper ls")
		fmt.Println()
		fmt.Println("Lists stored pages and the key derivation parameters.")
		fmt.Println("Does not require a password.")
	case "rm":
		fmt.Println("slipper rm <page> [page...]")
		fmt.Println()
		fmt.Println("Removes pages from the store. Supports glob patterns.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  slipper rm home")
		fmt.Println("  slipper rm \"posts/*\"")
	case "diff":
		fmt.Println("slipper diff -name <page> <file>")
		fmt.Println()
		fmt.Println("Opens a page and compares its plaintext with a local file.")
	case "compact":
		fmt.Println("slipper compact")
		fmt.Println()
		fmt.Println("Compacts the store to reclaim unused disk space.")
		fmt.Println("This is done automatically after 'rm'.")
	case "keyring":
		fmt.Println("slipper keyring <save|delete|status> <page>")
		fmt.Println()
		fmt.Println("Manages remembered page passwords in the OS keyring.")
		fmt.Println("Saved passwords are used by decrypt and diff instead of prompting.")
	case "clock":
		fmt.Println("slipper clock [-once]")
		fmt.Println()
		fmt.Println("Shows the c12 clock: morning hours count down to noon,")
		fmt.Println("afternoon hours count up from it.")
	case "completion":
		fmt.Println("slipper completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  eval \"$(slipper completion bash)\"   # ~/.bashrc")
		fmt.Println("  eval \"$(slipper completion zsh)\"    # ~/.zshrc")
		fmt.Println("  slipper completion fish | source    # fish config")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
