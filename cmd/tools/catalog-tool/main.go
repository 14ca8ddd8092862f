// cmd/tools/catalog-tool/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"voice-demo-generator/internal/models"
	"voice-demo-generator/pkg/catalog"
)

const (
	defaultTemplatesPath  = "configs/conversation_templates.json"
	defaultIndustriesPath = "configs/industries.json"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		help(out)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "validate":
		fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
		templatesPath := fs.String("templates", defaultTemplatesPath, "Path to the conversation templates")
		industriesPath := fs.String("industries", defaultIndustriesPath, "Path to the industry list")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return validateCatalogs(out, *templatesPath, *industriesPath)

	case "add-industry":
		fs := pflag.NewFlagSet("add-industry", pflag.ContinueOnError)
		path := fs.String("path", defaultIndustriesPath, "Path to the industry list")
		name := fs.String("name", "", "Industry display name (e.g., Pet Groomers)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" {
			return fmt.Errorf("--name is required for add-industry")
		}
		if err := addIndustry(*path, *name); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added industry: %s\n", *name)

	case "add-context":
		fs := pflag.NewFlagSet("add-context", pflag.ContinueOnError)
		path := fs.String("path", defaultTemplatesPath, "Path to the conversation templates")
		industry := fs.String("industry", "", "Industry the context is curated for")
		var bctx models.BusinessContext
		fs.StringVar(&bctx.BusinessName, "business-name", "", "Business name")
		fs.StringVar(&bctx.ServiceType, "service-type", "", "Service type")
		fs.StringVar(&bctx.SpecificNeed, "specific-need", "", "Specific customer need")
		fs.StringVar(&bctx.ServiceCategory, "service-category", "", "Service category")
		fs.StringVar(&bctx.ServiceList, "service-list", "", "Comma-separated service list sentence")
		fs.StringVar(&bctx.RecommendedService, "recommended-service", "", "Recommended service")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *industry == "" || bctx.BusinessName == "" || bctx.ServiceType == "" {
			return fmt.Errorf("--industry, --business-name and --service-type are required for add-context")
		}
		if err := addContext(*path, *industry, bctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added context for %s: %s\n", *industry, bctx.BusinessName)

	case "update-context":
		fs := pflag.NewFlagSet("update-context", pflag.ContinueOnError)
		path := fs.String("path", defaultTemplatesPath, "Path to the conversation templates")
		industry := fs.String("industry", "", "Industry to update")
		field := fs.String("field", "", "Field to update (business_name, service_type, ...)")
		value := fs.String("value", "", "New value for the field")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *industry == "" || *field == "" || *value == "" {
			return fmt.Errorf("--industry, --field and --value are required for update-context")
		}
		if err := updateContext(*path, *industry, *field, *value); err != nil {
			return err
		}
		fmt.Fprintf(out, "Updated context %s, field %s to %s\n", *industry, *field, *value)

	case "help":
		help(out)

	default:
		help(out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return nil
}

func validateCatalogs(out io.Writer, templatesPath, industriesPath string) error {
	set, err := catalog.LoadTemplates(templatesPath)
	if err != nil {
		return err
	}
	industries, err := catalog.LoadIndustries(industriesPath)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(industries))
	for _, name := range industries {
		known[name] = true
	}
	var orphans []string
	for name := range set.IndustryContexts {
		if !known[name] {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		fmt.Fprintf(out, "Warning: curated context %q is not in the industry list\n", name)
	}

	fmt.Fprintf(out, "Catalog validation passed. Found %d industries, %d curated contexts.\n",
		len(industries), len(set.IndustryContexts))
	return nil
}

func addIndustry(path, name string) error {
	industries, err := catalog.LoadIndustries(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load industries: %w", err)
		}
		industries = []string{}
	}

	for _, existing := range industries {
		if existing == name {
			return fmt.Errorf("industry %s already exists", name)
		}
	}

	return catalog.SaveIndustries(path, append(industries, name))
}

func addContext(path, industry string, bctx models.BusinessContext) error {
	set, err := catalog.LoadTemplates(path)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	if _, exists := set.Context(industry); exists {
		return fmt.Errorf("context for %s already exists", industry)
	}
	if set.IndustryContexts == nil {
		set.IndustryContexts = map[string]models.BusinessContext{}
	}
	set.IndustryContexts[industry] = bctx

	return catalog.SaveTemplates(path, set)
}

func updateContext(path, industry, field, value string) error {
	set, err := catalog.LoadTemplates(path)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	bctx, ok := set.Context(industry)
	if !ok {
		return fmt.Errorf("context for %s not found", industry)
	}

	switch field {
	case "business_name":
		bctx.BusinessName = value
	case "service_type":
		bctx.ServiceType = value
	case "specific_need":
		bctx.SpecificNeed = value
	case "service_category":
		bctx.ServiceCategory = value
	case "service_list":
		bctx.ServiceList = value
	case "recommended_service":
		bctx.RecommendedService = value
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	set.IndustryContexts[industry] = bctx

	return catalog.SaveTemplates(path, set)
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: catalog-tool <command> [flags]

Commands:
  validate        Validate the template and industry catalogs
  add-industry    Append an industry to the industry list
  add-context     Add a curated business context for an industry
  update-context  Update one field of a curated context
  help            Show this help message

Examples:
  catalog-tool validate --templates configs/conversation_templates.json --industries configs/industries.json
  catalog-tool add-industry --name "Pet Groomers"
  catalog-tool add-context --industry "Pet Groomers" --business-name "Happy Paws Grooming" --service-type "dog grooming"
  catalog-tool update-context --industry Dentists --field business_name --value "Bright Smile Family Dental"

Use 'catalog-tool <command> -h' for more information about a command.`)
}
