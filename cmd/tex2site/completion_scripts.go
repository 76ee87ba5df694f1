package main

import (
	"fmt"
	"io"
	"strings"
)

// globs splits a comma-separated glob list such as "*.yaml,*.yml".
func globs(list string) []string {
	var out []string
	for _, g := range strings.Split(list, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func findCommand(cmds []commandDef, name string) (commandDef, bool) {
	for _, c := range cmds {
		if c.Name == name {
			return c, true
		}
	}
	return commandDef{}, false
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for tex2site\n")
	b.WriteString("_tex2site_completions() {\n")
	b.WriteString("    local cur prev cmd i\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"\"\n\n")
	b.WriteString("    for ((i=1; i<COMP_CWORD; i++)); do\n")
	b.WriteString("        case \"${COMP_WORDS[i]}\" in\n")
	fmt.Fprintf(&b, "            %s)\n", strings.Join(commandNames(cmds), "|"))
	b.WriteString("                cmd=\"${COMP_WORDS[i]}\"\n")
	b.WriteString("                break\n")
	b.WriteString("                ;;\n")
	b.WriteString("            *.tex|-*)\n")
	b.WriteString("                cmd=convert\n")
	b.WriteString("                break\n")
	b.WriteString("                ;;\n")
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")

	b.WriteString("    if [[ -z \"$cmd\" ]]; then\n")
	b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
	b.WriteString("            cmd=convert\n")
	b.WriteString("        else\n")
	fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") $(compgen -f -X '!*.tex' -- \"$cur\") )\n",
		strings.Join(commandNames(cmds), " "))
	b.WriteString("            return 0\n")
	b.WriteString("        fi\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		switch c.Name {
		case "completion":
			b.WriteString("        completion)\n")
			b.WriteString("            COMPREPLY=( $(compgen -W \"bash zsh fish\" -- \"$cur\") )\n")
			b.WriteString("            ;;\n")
			continue
		case "help":
			b.WriteString("        help)\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(commandNames(cmds), " "))
			b.WriteString("            ;;\n")
			continue
		}
		if len(c.Flags) == 0 && c.FilePattern == "" {
			continue
		}
		writeBashCommand(&b, c)
	}
	b.WriteString("    esac\n")
	b.WriteString("    return 0\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _tex2site_completions tex2site\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBashCommand(b *strings.Builder, c commandDef) {
	fmt.Fprintf(b, "        %s)\n", c.Name)
	b.WriteString("            case \"$prev\" in\n")

	var valueFlags, names []string
	for _, f := range c.Flags {
		pattern := "--" + f.Long
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			pattern += "|-" + f.Short
			names = append(names, "-"+f.Short)
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(b, "                %s)\n", pattern)
			fmt.Fprintf(b, "                    COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(f.Values, " "))
			b.WriteString("                    return 0\n")
			b.WriteString("                    ;;\n")
		case flagFile:
			fmt.Fprintf(b, "                %s)\n", pattern)
			b.WriteString("                    COMPREPLY=(")
			for _, g := range globs(f.FileGlob) {
				fmt.Fprintf(b, " $(compgen -f -X '!%s' -- \"$cur\")", g)
			}
			b.WriteString(" $(compgen -d -- \"$cur\") )\n")
			b.WriteString("                    return 0\n")
			b.WriteString("                    ;;\n")
		case flagDir:
			fmt.Fprintf(b, "                %s)\n", pattern)
			b.WriteString("                    COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
			b.WriteString("                    return 0\n")
			b.WriteString("                    ;;\n")
		case flagString:
			valueFlags = append(valueFlags, pattern)
		}
	}
	if len(valueFlags) > 0 {
		fmt.Fprintf(b, "                %s)\n", strings.Join(valueFlags, "|"))
		b.WriteString("                    return 0\n")
		b.WriteString("                    ;;\n")
	}
	b.WriteString("            esac\n")

	b.WriteString("            if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(b, "                COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(names, " "))
	if c.FilePattern != "" {
		b.WriteString("            else\n")
		b.WriteString("                COMPREPLY=(")
		for _, g := range globs(c.FilePattern) {
			fmt.Fprintf(b, " $(compgen -f -X '!%s' -- \"$cur\")", g)
		}
		b.WriteString(" $(compgen -d -- \"$cur\") )\n")
	}
	b.WriteString("            fi\n")
	b.WriteString("            ;;\n")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshQuote escapes s for a single-quoted _arguments spec.
func zshQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef tex2site\n\n")
	b.WriteString("_tex2site() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe -t commands 'tex2site command' commands\n")
	b.WriteString("        _files -g '*.tex'\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    local cmd=\"$words[2]\"\n")
	b.WriteString("    [[ \"$cmd\" == *.tex || \"$cmd\" == -* ]] && cmd=convert\n\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		switch c.Name {
		case "completion":
			b.WriteString("        completion)\n")
			b.WriteString("            _values 'shell' bash zsh fish\n")
			b.WriteString("            ;;\n")
			continue
		case "help":
			b.WriteString("        help)\n")
			b.WriteString("            _describe -t commands 'tex2site command' commands\n")
			b.WriteString("            ;;\n")
			continue
		}
		if len(c.Flags) == 0 && c.FilePattern == "" {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "                %s \\\n", zshFlagSpec(f))
		}
		if c.FilePattern != "" {
			pattern := strings.Join(globs(c.FilePattern), " ")
			fmt.Fprintf(&b, "                '*:file:_files -g \"%s\"'\n", pattern)
		} else {
			b.WriteString("                '*: :'\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")

	b.WriteString("if [[ \"$funcstack[1]\" == \"_tex2site\" ]]; then\n")
	b.WriteString("    _tex2site \"$@\"\n")
	b.WriteString("else\n")
	b.WriteString("    compdef _tex2site tex2site\n")
	b.WriteString("fi\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"" + strings.Join(globs(f.FileGlob), " ") + "\""
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}

	body := "[" + zshQuote(f.Desc) + "]" + action
	if f.Short == "" {
		return "'--" + f.Long + body + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, body)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// fishQuote escapes s for a single-quoted fish string.
func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for tex2site\n\n")
	b.WriteString("function __fish_tex2site_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_tex2site_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c tex2site -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c tex2site -n __fish_tex2site_needs_command -a %s -d '%s'\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("complete -c tex2site -n __fish_tex2site_needs_command -ka '(__fish_complete_suffix .tex)'\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_tex2site_using_command %s'", c.Name)
		switch c.Name {
		case "completion":
			fmt.Fprintf(&b, "complete -c tex2site -n %s -a 'bash zsh fish'\n", cond)
			continue
		case "help":
			fmt.Fprintf(&b, "complete -c tex2site -n %s -a '%s'\n", cond, strings.Join(commandNames(cmds), " "))
			continue
		}
		if len(c.Flags) == 0 && c.FilePattern == "" {
			continue
		}
		b.WriteString("\n")
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c tex2site -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -xa '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				var suffixes []string
				for _, g := range globs(f.FileGlob) {
					suffixes = append(suffixes, "(__fish_complete_suffix "+strings.TrimPrefix(g, "*")+")")
				}
				line += " -ra '" + strings.Join(suffixes, " ") + "'"
			case flagDir:
				line += " -xa '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += " -d '" + fishQuote(f.Desc) + "'"
			b.WriteString(line + "\n")
		}
		if c.FilePattern != "" {
			for _, g := range globs(c.FilePattern) {
				fmt.Fprintf(&b, "complete -c tex2site -n %s -ka '(__fish_complete_suffix %s)'\n", cond, strings.TrimPrefix(g, "*"))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
