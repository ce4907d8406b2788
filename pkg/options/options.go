// Package options holds the resolution options and validates them once at
// the boundary, before any target is normalized.
package options

import (
	"reflect"
	"sort"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/targets"
	"github.com/go-playground/validator/v10"
)

// PluginPrefix is the package prefix accepted, and dropped, on include and
// exclude entries.
const PluginPrefix = "babel-plugin-"

// ModuleType selects the module transform appended to the plugin list.
type ModuleType string

const (
	ModulesAMD      ModuleType = "amd"
	ModulesCommonJS ModuleType = "commonjs"
	ModulesSystemJS ModuleType = "systemjs"
	ModulesUMD      ModuleType = "umd"
	// ModulesNone leaves module syntax untouched.
	ModulesNone ModuleType = "false"
)

// BuiltInsMode controls polyfill selection.
type BuiltInsMode string

const (
	BuiltInsNone  BuiltInsMode = "none"
	BuiltInsEntry BuiltInsMode = "entry"
	BuiltInsUsage BuiltInsMode = "usage"
)

// Options configures one resolution.
type Options struct {
	Targets            targets.Spec `koanf:"targets" json:"targets,omitempty" validate:"-"`
	Loose              bool         `koanf:"loose" json:"loose"`
	Include            []string     `koanf:"include" json:"include,omitempty" validate:"dive,required"`
	Exclude            []string     `koanf:"exclude" json:"exclude,omitempty" validate:"dive,required"`
	Modules            ModuleType   `koanf:"modules" json:"modules" validate:"oneof=amd commonjs systemjs umd false"`
	Debug              bool         `koanf:"debug" json:"debug"`
	UseBuiltIns        BuiltInsMode `koanf:"use_built_ins" json:"useBuiltIns" validate:"oneof=none entry usage"`
	ShippedProposals   bool         `koanf:"shipped_proposals" json:"shippedProposals"`
	ForceAllTransforms bool         `koanf:"force_all_transforms" json:"forceAllTransforms"`
	// UseSyntax false skips target-driven plugin selection. Nil means true.
	UseSyntax *bool `koanf:"use_syntax" json:"useSyntax,omitempty"`
}

// SyntaxEnabled reports whether plugins are selected from the targets.
func (o Options) SyntaxEnabled() bool {
	return o.UseSyntax == nil || *o.UseSyntax
}

// Defaults returns the options used when nothing is configured.
func Defaults() Options {
	return Options{
		Targets:     targets.Spec{},
		Modules:     ModulesCommonJS,
		UseBuiltIns: BuiltInsNone,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Normalize fills defaults, strips the plugin prefix from include and exclude
// and validates the result against cat. The input is not modified.
func Normalize(opts Options, cat *catalog.Catalog) (Options, error) {
	out := opts
	if out.Targets == nil {
		out.Targets = targets.Spec{}
	}
	if out.Modules == "" {
		out.Modules = ModulesCommonJS
	}
	if out.UseBuiltIns == "" {
		out.UseBuiltIns = BuiltInsNone
	}
	enabled := out.SyntaxEnabled()
	out.UseSyntax = &enabled
	out.Include = StripPrefixes(opts.Include)
	out.Exclude = StripPrefixes(opts.Exclude)

	if err := CheckDuplicates(out.Include, out.Exclude); err != nil {
		return Options{}, err
	}
	if err := CheckKnown(cat, out.Include, out.Exclude); err != nil {
		return Options{}, err
	}
	if err := validate.Struct(out); err != nil {
		return Options{}, translate(err)
	}
	return out, nil
}

// StripPrefixes drops PluginPrefix from every entry.
func StripPrefixes(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strings.TrimPrefix(strings.TrimSpace(id), PluginPrefix)
	}
	return out
}

// CheckDuplicates fails when an identifier is both included and excluded,
// listing every such identifier.
func CheckDuplicates(include, exclude []string) error {
	excluded := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	seen := make(map[string]bool)
	var duplicates []string
	for _, id := range include {
		if excluded[id] && !seen[id] {
			seen[id] = true
			duplicates = append(duplicates, id)
		}
	}
	if len(duplicates) > 0 {
		return errors.ListError(errors.ErrDuplicateIncludeExclude,
			"found in both include and exclude", duplicates)
	}
	return nil
}

// CheckKnown fails when include or exclude names an identifier that is not in
// cat, listing every unknown identifier across both lists.
func CheckKnown(cat *catalog.Catalog, lists ...[]string) error {
	seen := make(map[string]bool)
	var unknown []string
	for _, list := range lists {
		for _, id := range list {
			if id == "" || cat.IsValidIdentifier(id) || seen[id] {
				continue
			}
			seen[id] = true
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return errors.ListError(errors.ErrUnknownIdentifier,
			"unknown plugins/built-ins in include or exclude", unknown)
	}
	return nil
}

func translate(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, errors.ErrInternal, "options validation failed")
	}

	fields := make([]string, 0, len(verrs))
	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		details[fe.Field()] = fe.Value()
	}
	sort.Strings(fields)

	code := errors.ErrInvalidTargetVersion
	if verrs[0].Tag() == "required" {
		code = errors.ErrInvalidSpecification
	}
	return errors.Newf(code, "invalid value for option %s", strings.Join(fields, ", ")).
		WithDetail("option", verrs[0].Field()).
		WithDetail("value", verrs[0].Value()).
		WithDetail("fields", details)
}
