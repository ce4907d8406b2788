package requirement

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/targets"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func triplet(major, minor, patch uint8) string {
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

func TestDeciderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("empty target map is always required", prop.ForAll(
		func(env string, major, minor uint8) bool {
			table := catalog.SupportTable{env: triplet(major, minor, 0)}
			got, err := IsRequired(targets.Targets{Versions: map[string]string{}}, table)
			return err == nil && got
		},
		gen.Identifier(), gen.UInt8(), gen.UInt8(),
	))

	properties.Property("implemented above target is required", prop.ForAll(
		func(major, minor, patch, bump uint8) bool {
			target := triplet(major, minor, patch)
			implemented := fmt.Sprintf("%d.%d.%d", major, minor, uint16(patch)+uint16(bump)+1)
			got, err := IsRequired(
				targets.Targets{Versions: map[string]string{"chrome": target}},
				catalog.SupportTable{"chrome": implemented},
			)
			return err == nil && got
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))

	properties.Property("target at or above implemented is not required", prop.ForAll(
		func(major, minor, patch, bump uint8) bool {
			implemented := triplet(major, minor, patch)
			target := fmt.Sprintf("%d.%d.%d", major, uint16(minor)+uint16(bump), patch)
			got, err := IsRequired(
				targets.Targets{Versions: map[string]string{"chrome": target}},
				catalog.SupportTable{"chrome": implemented},
			)
			return err == nil && !got
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))

	properties.Property("uglify forces required", prop.ForAll(
		func(major uint8) bool {
			v := triplet(major, 0, 0)
			got, err := IsRequired(
				targets.Targets{Versions: map[string]string{"node": v}, Uglify: true},
				catalog.SupportTable{"node": v},
			)
			return err == nil && got
		},
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
