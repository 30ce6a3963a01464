// Package config turns loosely typed parameter sources (attribute maps, JSON files and
// command line strings) into validated planner parameters.
package config

import (
	"encoding/json"
	"math"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"go.viam.com/pathplanner/pathplanner"
)

// AttributeMap is a loosely typed set of parameter values keyed by their json names.
type AttributeMap map[string]interface{}

// Has returns whether the given key is in the attributes.
func (am AttributeMap) Has(key string) bool {
	_, has := am[key]
	return has
}

// ParamsFromAttributes decodes attributes over the default parameters and validates the result.
// Values may be numbers or numeric strings; unknown keys are rejected.
func ParamsFromAttributes(attributes AttributeMap) (pathplanner.Params, error) {
	params := pathplanner.DefaultParams()
	if err := decodeInto(&params, attributes); err != nil {
		return pathplanner.Params{}, err
	}
	if err := params.Validate("params"); err != nil {
		return pathplanner.Params{}, err
	}
	return params, nil
}

// ApplyOverrides parses each raw value according to the type of the field it names and
// returns params with those fields replaced. Every unparsable value and unknown field is
// reported.
func ApplyOverrides(params pathplanner.Params, overrides map[string]string) (pathplanner.Params, error) {
	kinds := paramKinds()
	attributes := AttributeMap{}
	var errs error
	for _, name := range sortedKeys(overrides) {
		raw := strings.TrimSpace(overrides[name])
		kind, ok := kinds[name]
		if !ok {
			errs = multierr.Append(errs, errors.Errorf("unknown parameter %q", name))
			continue
		}
		var (
			val interface{}
			err error
		)
		switch kind {
		case reflect.Int:
			val, err = cast.ToIntE(raw)
		default:
			val, err = cast.ToFloat64E(raw)
		}
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("invalid value %q for %s: expected %s", overrides[name], name, kindName(kind)))
			continue
		}
		attributes[name] = val
	}
	if errs != nil {
		return pathplanner.Params{}, errs
	}
	if err := decodeInto(&params, attributes); err != nil {
		return pathplanner.Params{}, err
	}
	if err := params.Validate("params"); err != nil {
		return pathplanner.Params{}, err
	}
	return params, nil
}

// LoadParamsFile reads a JSON object of parameters from path. Missing fields keep their
// defaults.
func LoadParamsFile(path string) (pathplanner.Params, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return pathplanner.Params{}, errors.Wrap(err, "reading params file")
	}
	var attributes AttributeMap
	if err := json.Unmarshal(data, &attributes); err != nil {
		return pathplanner.Params{}, errors.Wrapf(err, "parsing params file %q", path)
	}
	params, err := ParamsFromAttributes(attributes)
	if err != nil {
		return pathplanner.Params{}, errors.Wrapf(err, "params file %q", path)
	}
	return params, nil
}

// ParamsToAttributes is the inverse of ParamsFromAttributes.
func ParamsToAttributes(params pathplanner.Params) (AttributeMap, error) {
	attributes := AttributeMap{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &attributes,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(params); err != nil {
		return nil, errors.Wrap(err, "encoding params")
	}
	return attributes, nil
}

// Schema returns the JSON schema of the parameter object.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&pathplanner.Params{})
}

func decodeInto(params *pathplanner.Params, attributes AttributeMap) error {
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           params,
		Metadata:         &md,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(rejectFractionalInts),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]interface{}(attributes)); err != nil {
		return errors.Wrap(err, "decoding params")
	}
	if len(md.Unused) != 0 {
		sort.Strings(md.Unused)
		return errors.Errorf("unknown parameters: %s", strings.Join(md.Unused, ", "))
	}
	return nil
}

// rejectFractionalInts stops 1.5 from silently truncating into an integer field.
func rejectFractionalInts(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Int || from.Kind() != reflect.Float64 {
		return data, nil
	}
	f, ok := data.(float64)
	if !ok {
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, errors.Errorf("expected an integer, got %v", f)
	}
	return data, nil
}

var (
	paramKindsOnce   sync.Once
	paramKindsByName map[string]reflect.Kind
)

// paramKinds maps each json field name of Params to its kind.
func paramKinds() map[string]reflect.Kind {
	paramKindsOnce.Do(func() {
		paramKindsByName = map[string]reflect.Kind{}
		paramsT := reflect.TypeOf(pathplanner.Params{})
		for i := 0; i < paramsT.NumField(); i++ {
			field := paramsT.Field(i)
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				continue
			}
			paramKindsByName[name] = field.Type.Kind()
		}
	})
	return paramKindsByName
}

// ParamNames returns the json names of every parameter, sorted.
func ParamNames() []string {
	return sortedKeys(paramKinds())
}

func kindName(kind reflect.Kind) string {
	if kind == reflect.Int {
		return "an integer"
	}
	return "a number"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
