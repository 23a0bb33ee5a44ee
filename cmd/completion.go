package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_slipper_pages() {
    slipper ls 2>/dev/null | grep -E '^  ' | sed 's/^  //' | sed 's/ (.*//'
}

_slipper() {
    local cur prev words cword
    _init_completion || return

    local commands="init encrypt decrypt try page ls rm diff compact keyring clock help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    if [[ "$prev" == "-name" ]]; then
        COMPREPLY=($(compgen -W "$(_slipper_pages)" -- "$cur"))
        return
    fi
    if [[ "$prev" == "-in" || "$prev" == "-o" ]]; then
        _filedir
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        encrypt)
            COMPREPLY=($(compgen -W "-name -in -raw -save" -- "$cur"))
            ;;
        decrypt|try)
            COMPREPLY=($(compgen -W "-name -hex -wait" -- "$cur"))
            ;;
        page)
            COMPREPLY=($(compgen -W "-name -hex -o -title -prompt -clock -wasm -exec" -- "$cur"))
            ;;
        rm)
            COMPREPLY=($(compgen -W "$(_slipper_pages)" -- "$cur"))
            ;;
        diff)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-name" -- "$cur"))
            else
                _filedir
            fi
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        clock)
            COMPREPLY=($(compgen -W "-once" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _slipper slipper
`

const zshCompletion = `#compdef slipper

_slipper() {
    local -a commands
    commands=(
        'init:Create a page store'
        'encrypt:Seal a plaintext under a password'
        'decrypt:Open a page with a password'
        'try:Replay guesses against a page'
        'page:Render the HTML page for a sealed page'
        'ls:List stored pages'
        'rm:Remove pages from the store'
        'diff:Compare a page with a local file'
        'compact:Compact the store'
        'keyring:Manage page passwords in the OS keyring'
        'clock:Show the c12 clock'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'slipper commands' commands
            ;;
        args)
            case "${words[2]}" in
                encrypt)
                    _arguments \
                        '-name[Store the page under this name]:page:_slipper_pages' \
                        '-in[Read plaintext from file]:file:_files' \
                        '-raw[Use the password exactly as typed]' \
                        '-save[Remember the password in the OS keyring]'
                    ;;
                decrypt|try)
                    _arguments \
                        '-name[Stored page]:page:_slipper_pages' \
                        '-hex[Page ciphertext]:hex:' \
                        '-wait[Finish each attempt before the next guess]'
                    ;;
                page)
                    _arguments \
                        '-name[Stored page]:page:_slipper_pages' \
                        '-hex[Page ciphertext]:hex:' \
                        '-o[Output file]:file:_files' \
                        '-title[Document title]:title:' \
                        '-prompt[Input label]:prompt:' \
                        '-clock[Include the c12 clock]' \
                        '-wasm[Path of slipper.wasm]:path:' \
                        '-exec[Path of wasm_exec.js]:path:'
                    ;;
                rm)
                    _arguments '*:page:_slipper_pages'
                    ;;
                diff)
                    _arguments \
                        '-name[Stored page]:page:_slipper_pages' \
                        '*:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                clock)
                    _arguments '-once[Print once and exit]'
                    ;;
                help)
                    _describe -t commands 'slipper commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_slipper_pages() {
    local -a pages
    pages=(${(f)"$(slipper ls 2>/dev/null | grep -E '^  ' | sed 's/^  //' | sed 's/ (.*//')"})
    _describe -t pages 'pages' pages
}

_slipper "$@"
`

const fishCompletion = `# slipper fish completions

set -l commands init encrypt decrypt try page ls rm diff compact keyring clock help completion

function __slipper_pages
    slipper ls 2>/dev/null | string match -r '^  .*' | string replace -r '^  (.*?) \(.*' '$1'
end

complete -c slipper -f

# Commands
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a page store'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a encrypt -d 'Seal a plaintext'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a decrypt -d 'Open a page'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a try -d 'Replay guesses against a page'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a page -d 'Render the HTML page'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List stored pages'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove pages'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare a page with a file'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact the store'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage passwords in OS keyring'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a clock -d 'Show the c12 clock'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c slipper -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# flags
complete -c slipper -n "__fish_seen_subcommand_from encrypt decrypt try page diff keyring" -o name -xa "(__slipper_pages)"
complete -c slipper -n "__fish_seen_subcommand_from encrypt" -o in -rF
complete -c slipper -n "__fish_seen_subcommand_from encrypt" -o raw -d 'Use the password as typed'
complete -c slipper -n "__fish_seen_subcommand_from encrypt" -o save -d 'Remember the password'
complete -c slipper -n "__fish_seen_subcommand_from decrypt try page" -o hex -x -d 'Page ciphertext'
complete -c slipper -n "__fish_seen_subcommand_from try" -o wait -d 'Finish each attempt first'
complete -c slipper -n "__fish_seen_subcommand_from page" -o o -rF
complete -c slipper -n "__fish_seen_subcommand_from page" -o clock -d 'Include the c12 clock'
complete -c slipper -n "__fish_seen_subcommand_from diff" -F
complete -c slipper -n "__fish_seen_subcommand_from clock" -o once -d 'Print once and exit'

# rm pages
complete -c slipper -n "__fish_seen_subcommand_from rm" -a "(__slipper_pages)"

# keyring subcommands
complete -c slipper -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c slipper -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c slipper -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
