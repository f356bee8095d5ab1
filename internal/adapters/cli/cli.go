package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"deposito/internal/app"
	"deposito/internal/core"
	"deposito/internal/project"

	"github.com/spf13/pflag"
)

// Options carries the entrypoint hooks a CLI cannot build by itself.
type Options struct {
	NoColor bool
	// Init creates the project marker and schema, returning the marker path.
	Init func() (string, error)
	// Shell runs an interactive session over this CLI.
	Shell func(ctx context.Context) error
}

// CLI turns argv into one ApplicationService call and renders its result.
type CLI struct {
	svc   app.ApplicationService
	out   io.Writer
	style style
	opts  Options
}

// New builds a CLI writing to out. svc may be nil when only help, init or
// unknown commands can be dispatched (see RequiresProject).
func New(svc app.ApplicationService, out io.Writer, opts Options) *CLI {
	return &CLI{
		svc:   svc,
		out:   out,
		style: newStyle(out, opts.NoColor),
		opts:  opts,
	}
}

type command struct {
	// flags registers the command's options; nil for commands without any.
	flags func(fs *pflag.FlagSet)
	run   func(c *CLI, ctx context.Context, fs *pflag.FlagSet) error
	// store marks commands that need the marker directory and an open store.
	store bool
}

var commands = map[string]command{
	"init":   {run: (*CLI).runInit},
	"create": {run: (*CLI).runCreate, store: true},
	"view":   {run: (*CLI).runView, store: true},
	"list":   {run: (*CLI).runList, store: true},
	"add":    {flags: addFlags, run: (*CLI).runAdd, store: true},
	"edit":   {flags: editFlags, run: (*CLI).runEdit, store: true},
	"remove": {flags: removeFlags, run: (*CLI).runRemove, store: true},
	"rules":  {flags: rulesFlags, run: (*CLI).runRules, store: true},
	"raport": {flags: raportFlags, run: (*CLI).runRaport, store: true},
	"shell":  {run: (*CLI).runShell, store: true},
}

func isHelp(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

// RequiresProject reports whether args dispatch to a command that needs the
// marker directory and an open store. Help requests, init, unknown commands
// and arguments that fail to parse do not.
func RequiresProject(args []string) bool {
	if len(args) == 0 || isHelp(args[0]) {
		return false
	}
	cmd, ok := commands[args[0]]
	if !ok || !cmd.store {
		return false
	}
	_, help, err := parseArgs(args[0], cmd, args[1:])
	return err == nil && !help
}

// Run dispatches one command. args excludes the program name.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || isHelp(args[0]) {
		c.printHelp(c.out)
		return nil
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w `%s`", ErrUnknownCommand, name)
	}

	fs, help, err := parseArgs(name, cmd, args[1:])
	if err != nil {
		return err
	}
	if help {
		c.printCommandHelp(c.out, name)
		return nil
	}
	if cmd.store && c.svc == nil {
		return project.ErrNotInitialized
	}
	return cmd.run(c, ctx, fs)
}

// parseArgs builds the command's flag set, adds -h/--help and parses args.
func parseArgs(name string, cmd command, args []string) (*pflag.FlagSet, bool, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	if cmd.flags != nil {
		cmd.flags(fs)
	}
	help := fs.BoolP("help", "h", false, "show usage")

	if err := fs.Parse(separateNegatives(fs, args)); err != nil {
		return nil, false, usageErrorf(name, "%v", err)
	}
	return fs, *help, nil
}

// separateNegatives moves negative integers that are not option values behind
// a "--" so pflag reads them as positional arguments. Positional order is kept.
func separateNegatives(fs *pflag.FlagSet, args []string) []string {
	var options, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case a == "-" || !strings.HasPrefix(a, "-") || isNegativeNumber(a):
			positional = append(positional, a)
		default:
			options = append(options, a)
			if takesValue(fs, a) {
				if i+1 == len(args) {
					// Missing value: leave args as they are so pflag reports it.
					return args
				}
				i++
				options = append(options, args[i])
			}
		}
	}
	return append(append(options, "--"), positional...)
}

func isNegativeNumber(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	for _, r := range arg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// takesValue reports whether option arg consumes the next argument as its
// value, following pflag's rules for long options and shorthand groups.
func takesValue(fs *pflag.FlagSet, arg string) bool {
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		if strings.Contains(name, "=") {
			return false
		}
		f := fs.Lookup(name)
		return f != nil && f.NoOptDefVal == ""
	}

	shorthands := []rune(strings.TrimPrefix(arg, "-"))
	for i, r := range shorthands {
		f := fs.ShorthandLookup(string(r))
		if f == nil {
			return false
		}
		if f.NoOptDefVal == "" {
			return i == len(shorthands)-1
		}
	}
	return false
}

func parseInt(command, what, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, usageErrorf(command, "%s must be an integer, got %q", what, s)
	}
	return n, nil
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func addFlags(fs *pflag.FlagSet) {
	fs.StringP("description", "d", "", "description stored when the item is new")
}

func editFlags(fs *pflag.FlagSet) {
	fs.StringP("name", "n", "", "new item name")
	fs.StringP("description", "d", "", "new description")
	fs.Int64P("quantity", "q", 0, "new quantity")
}

func removeFlags(fs *pflag.FlagSet) {
	fs.BoolP("warehouse", "w", false, "remove whole warehouses")
	fs.BoolP("item", "i", false, "remove named items of one warehouse")
	fs.BoolP("all", "a", false, "remove every item of one warehouse")
}

func rulesFlags(fs *pflag.FlagSet) {
	fs.BoolP("list", "l", false, "list the rules of a warehouse")
	fs.BoolP("create", "c", false, "create a rule")
	fs.BoolP("edit", "e", false, "set a threshold on several rules")
	fs.BoolP("remove", "r", false, "remove several rules")
}

func raportFlags(fs *pflag.FlagSet) {
	fs.BoolP("all", "a", false, "report every warehouse")
}

func flagBool(fs *pflag.FlagSet, name string) bool {
	v, _ := fs.GetBool(name)
	return v
}

func (c *CLI) runInit(_ context.Context, fs *pflag.FlagSet) error {
	if fs.NArg() != 0 {
		return usageErrorf("init", "takes no arguments")
	}
	if c.opts.Init == nil {
		return fmt.Errorf("init is not available in this session")
	}
	path, err := c.opts.Init()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Initialized deposito in %s\n", path)
	return nil
}

func (c *CLI) runShell(ctx context.Context, fs *pflag.FlagSet) error {
	if c.opts.Shell == nil {
		return fmt.Errorf("shell is not available in this session")
	}
	return c.opts.Shell(ctx)
}

func (c *CLI) runCreate(ctx context.Context, fs *pflag.FlagSet) error {
	if fs.NArg() != 1 {
		return usageErrorf("create", "expected one warehouse name, got %d arguments", fs.NArg())
	}
	result, err := c.svc.CreateWarehouse(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	c.printWarehouseCreated(result)
	return nil
}

func (c *CLI) runView(ctx context.Context, fs *pflag.FlagSet) error {
	if fs.NArg() != 0 {
		return usageErrorf("view", "takes no arguments")
	}
	result, err := c.svc.ListWarehouses(ctx)
	if err != nil {
		return err
	}
	c.printWarehouses(result)
	return nil
}

func (c *CLI) runList(ctx context.Context, fs *pflag.FlagSet) error {
	if fs.NArg() > 1 {
		return usageErrorf("list", "expected at most one warehouse name")
	}
	result, err := c.svc.ListItems(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	c.printItems(result)
	return nil
}

func (c *CLI) runAdd(ctx context.Context, fs *pflag.FlagSet) error {
	if fs.NArg() < 2 || fs.NArg() > 3 {
		return usageErrorf("add", "expected <warehouse> <item> [quantity]")
	}

	quantity := int64(1)
	if fs.NArg() == 3 {
		n, err := parseInt("add", "quantity", fs.Arg(2))
		if err != nil {
			return err
		}
		quantity = n
	}

	req := app.AddItemRequest{Warehouse: fs.Arg(0), Item: fs.Arg(1), Quantity: quantity}
	if fs.Changed("description") {
		description, _ := fs.GetString("description")
		req.Description = &description
	}
	result, err := c.svc.AddItem(ctx, req)
	if err != nil {
		return err
	}
	c.printItemAdded(result)
	return nil
}

func (c *CLI) runEdit(ctx context.Context, fs *pflag.FlagSet) error {
	if fs.NArg() != 2 {
		return usageErrorf("edit", "expected <warehouse> <item>")
	}

	var patch core.ItemPatch
	if fs.Changed("name") {
		name, _ := fs.GetString("name")
		patch.Name = &name
	}
	if fs.Changed("description") {
		description, _ := fs.GetString("description")
		patch.Description = &description
	}
	if fs.Changed("quantity") {
		quantity, _ := fs.GetInt64("quantity")
		patch.Quantity = &quantity
	}
	if patch.IsEmpty() {
		return usageErrorf("edit", "nothing to change, pass at least one of -n, -d or -q")
	}

	result, err := c.svc.EditItem(ctx, app.EditItemRequest{Warehouse: fs.Arg(0), Item: fs.Arg(1), Patch: patch})
	if err != nil {
		return err
	}
	c.printItemEdited(result)
	return nil
}

func (c *CLI) runRemove(ctx context.Context, fs *pflag.FlagSet) error {
	warehouses := flagBool(fs, "warehouse")
	items := flagBool(fs, "item")
	all := flagBool(fs, "all")
	if countSet(warehouses, items, all) != 1 {
		return usageErrorf("remove", "exactly one of -w, -i or -a is required")
	}

	var kind core.RemovalKind
	switch {
	case warehouses:
		kind = core.RemoveWarehouses
		if fs.NArg() < 1 {
			return usageErrorf("remove", "-w expects at least one warehouse name")
		}
	case items:
		kind = core.RemoveItems
		if fs.NArg() < 2 {
			return usageErrorf("remove", "-i expects a warehouse followed by item names")
		}
	case all:
		kind = core.RemoveAllItems
		if fs.NArg() != 1 {
			return usageErrorf("remove", "-a expects exactly one warehouse name")
		}
	}

	result, err := c.svc.Remove(ctx, app.RemoveRequest{Kind: kind, Args: fs.Args()})
	if err != nil {
		return err
	}
	c.printRemoved(result)
	return nil
}

func (c *CLI) runRules(ctx context.Context, fs *pflag.FlagSet) error {
	list := flagBool(fs, "list")
	create := flagBool(fs, "create")
	edit := flagBool(fs, "edit")
	remove := flagBool(fs, "remove")
	if countSet(list, create, edit, remove) != 1 {
		return usageErrorf("rules", "exactly one of -l, -c, -e or -r is required")
	}

	switch {
	case list:
		if fs.NArg() > 1 {
			return usageErrorf("rules", "-l expects at most one warehouse name")
		}
		result, err := c.svc.ListRules(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		c.printRules(result)

	case create:
		if fs.NArg() != 3 {
			return usageErrorf("rules", "-c expects <warehouse> <item> <threshold>")
		}
		threshold, err := parseInt("rules", "threshold", fs.Arg(2))
		if err != nil {
			return err
		}
		result, err := c.svc.CreateRule(ctx, app.CreateRuleRequest{
			Warehouse: fs.Arg(0),
			Item:      fs.Arg(1),
			Threshold: threshold,
		})
		if err != nil {
			return err
		}
		c.printRuleCreated(result)
		if result.ReportErr != nil {
			return result.ReportErr
		}
		c.printReport(result.Report)

	case edit:
		if fs.NArg() < 3 {
			return usageErrorf("rules", "-e expects <warehouse> <threshold> <item>...")
		}
		threshold, err := parseInt("rules", "threshold", fs.Arg(1))
		if err != nil {
			return err
		}
		result, err := c.svc.EditRules(ctx, app.EditRulesRequest{
			Warehouse: fs.Arg(0),
			Items:     fs.Args()[2:],
			Threshold: threshold,
		})
		if err != nil {
			return err
		}
		c.printRulesEdited(result, threshold)

	case remove:
		if fs.NArg() < 2 {
			return usageErrorf("rules", "-r expects <warehouse> <item>...")
		}
		result, err := c.svc.RemoveRules(ctx, app.RemoveRulesRequest{
			Warehouse: fs.Arg(0),
			Items:     fs.Args()[1:],
		})
		if err != nil {
			return err
		}
		c.printRulesRemoved(result)
	}
	return nil
}

func (c *CLI) runRaport(ctx context.Context, fs *pflag.FlagSet) error {
	all := flagBool(fs, "all")

	var (
		result *app.ReportResult
		err    error
	)
	if all {
		if fs.NArg() != 0 {
			return usageErrorf("raport", "-a takes no warehouse name")
		}
		result, err = c.svc.ReportAll(ctx)
	} else {
		if fs.NArg() > 1 {
			return usageErrorf("raport", "expected at most one warehouse name")
		}
		result, err = c.svc.Report(ctx, fs.Arg(0))
	}
	if err != nil {
		return err
	}
	c.printReport(result)
	return nil
}
