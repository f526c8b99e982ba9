// Package config loads and validates the mount daemon's JSON configuration
// file. A Config is fully valid once constructed and is never mutated
// afterwards; any number of concurrent readers may share it.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rockit-astro/lmountd/internal/registry"
)

// ParkPosition is a named alt/az rest target for the mount.
type ParkPosition struct {
	Desc string  `json:"desc"`
	Alt  float64 `json:"alt"`
	Az   float64 `json:"az"`
}

// Config is the daemon configuration parsed from a JSON file.
// Daemon and ControlIPs hold identities resolved through the registry.
type Config struct {
	Daemon           registry.Daemon
	LogName          string
	ControlIPs       []registry.Machine
	PWIHost          string
	PWIPort          int
	PWITimeout       float64
	SlewTimeout      float64
	SlewPollInterval float64
	HomeTimeout      float64
	HomePollInterval float64
	HASoftLimits     [2]float64
	DecSoftLimits    [2]float64
	ParkPositions    map[string]ParkPosition
}

// fileSchema is the on-disk document shape. Scalar fields are pointers so
// a missing key is distinguishable from a present zero value.
type fileSchema struct {
	Daemon           *string                       `json:"daemon" validate:"required,daemon_name"`
	LogName          *string                       `json:"log_name" validate:"required"`
	ControlMachines  []string                      `json:"control_machines" validate:"required,dive,machine_name"`
	PWIHost          *string                       `json:"pwi_host" validate:"required,min=1"`
	PWIPort          *int                          `json:"pwi_port" validate:"required"`
	PWITimeout       *float64                      `json:"pwi_timeout" validate:"required,gte=0"`
	SlewTimeout      *float64                      `json:"slew_timeout" validate:"required,gte=0"`
	SlewPollInterval *float64                      `json:"slew_poll_interval" validate:"required,gte=0"`
	HomeTimeout      *float64                      `json:"home_timeout" validate:"required,gte=0"`
	HomePollInterval *float64                      `json:"home_poll_interval" validate:"required,gte=0"`
	HASoftLimits     []float64                     `json:"ha_soft_limits" validate:"required,len=2,dive,gte=-180,lte=180"`
	DecSoftLimits    []float64                     `json:"dec_soft_limits" validate:"required,len=2,dive,gte=-90,lte=90"`
	ParkPositions    map[string]parkPositionSchema `json:"park_positions" validate:"required,dive"`
}

type parkPositionSchema struct {
	Desc *string  `json:"desc" validate:"required"`
	Alt  *float64 `json:"alt" validate:"required,gte=0,lte=90"`
	Az   *float64 `json:"az" validate:"required,gte=0,lte=360"`
}

// Loader validates mount configuration files against the daemon schema.
type Loader struct {
	registry *registry.Registry
	validate *validator.Validate
}

// NewLoader creates a configuration loader resolving daemon and machine
// names through the given registry.
func NewLoader(reg *registry.Registry) *Loader {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the document key names, not Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("daemon_name", func(fl validator.FieldLevel) bool {
		_, ok := reg.Daemon(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("machine_name", func(fl validator.FieldLevel) bool {
		_, ok := reg.Machine(fl.Field().String())
		return ok
	})

	return &Loader{registry: reg, validate: v}
}

// Load reads, parses and validates the JSON configuration at path.
// Failures are reported as *FileError, *ParseError, *SchemaError or
// *LookupError; all are fatal to daemon startup.
func (l *Loader) Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	// Establish that the document is well-formed JSON before applying the
	// schema, so syntax problems and schema problems report differently.
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var file fileSchema
	if err := dec.Decode(&file); err != nil {
		return nil, schemaErrorFromDecode(err)
	}

	if err := l.validate.Struct(&file); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, schemaErrorFromViolation(verrs[0])
		}
		return nil, &SchemaError{Detail: err.Error()}
	}

	return l.resolve(&file)
}

// resolve materialises the validated document into an immutable Config,
// replacing daemon and machine names with registry identities.
func (l *Loader) resolve(file *fileSchema) (*Config, error) {
	daemon, ok := l.registry.Daemon(*file.Daemon)
	if !ok {
		return nil, &LookupError{Kind: "daemon", Name: *file.Daemon}
	}

	controlIPs := make([]registry.Machine, 0, len(file.ControlMachines))
	for _, name := range file.ControlMachines {
		machine, ok := l.registry.Machine(name)
		if !ok {
			return nil, &LookupError{Kind: "machine", Name: name}
		}
		controlIPs = append(controlIPs, machine)
	}

	parkPositions := make(map[string]ParkPosition, len(file.ParkPositions))
	for name, p := range file.ParkPositions {
		parkPositions[name] = ParkPosition{Desc: *p.Desc, Alt: *p.Alt, Az: *p.Az}
	}

	cfg := &Config{
		Daemon:           daemon,
		LogName:          *file.LogName,
		ControlIPs:       controlIPs,
		PWIHost:          *file.PWIHost,
		PWIPort:          *file.PWIPort,
		PWITimeout:       *file.PWITimeout,
		SlewTimeout:      *file.SlewTimeout,
		SlewPollInterval: *file.SlewPollInterval,
		HomeTimeout:      *file.HomeTimeout,
		HomePollInterval: *file.HomePollInterval,
		ParkPositions:    parkPositions,
	}
	copy(cfg.HASoftLimits[:], file.HASoftLimits)
	copy(cfg.DecSoftLimits[:], file.DecSoftLimits)

	return cfg, nil
}

// MarshalJSON serialises the Config back into the on-disk document shape,
// with resolved identities reduced to their registry names. A marshalled
// Config always reloads to an equal Config.
func (c *Config) MarshalJSON() ([]byte, error) {
	machines := make([]string, 0, len(c.ControlIPs))
	for _, m := range c.ControlIPs {
		machines = append(machines, m.Name)
	}

	return json.Marshal(struct {
		Daemon           string                  `json:"daemon"`
		LogName          string                  `json:"log_name"`
		ControlMachines  []string                `json:"control_machines"`
		PWIHost          string                  `json:"pwi_host"`
		PWIPort          int                     `json:"pwi_port"`
		PWITimeout       float64                 `json:"pwi_timeout"`
		SlewTimeout      float64                 `json:"slew_timeout"`
		SlewPollInterval float64                 `json:"slew_poll_interval"`
		HomeTimeout      float64                 `json:"home_timeout"`
		HomePollInterval float64                 `json:"home_poll_interval"`
		HASoftLimits     [2]float64              `json:"ha_soft_limits"`
		DecSoftLimits    [2]float64              `json:"dec_soft_limits"`
		ParkPositions    map[string]ParkPosition `json:"park_positions"`
	}{
		Daemon:           c.Daemon.Name,
		LogName:          c.LogName,
		ControlMachines:  machines,
		PWIHost:          c.PWIHost,
		PWIPort:          c.PWIPort,
		PWITimeout:       c.PWITimeout,
		SlewTimeout:      c.SlewTimeout,
		SlewPollInterval: c.SlewPollInterval,
		HomeTimeout:      c.HomeTimeout,
		HomePollInterval: c.HomePollInterval,
		HASoftLimits:     c.HASoftLimits,
		DecSoftLimits:    c.DecSoftLimits,
		ParkPositions:    c.ParkPositions,
	})
}

// schemaErrorFromDecode maps strict-decoding failures onto SchemaError.
// The document is known to be well-formed JSON at this point, so any
// decode failure is a type mismatch or a disallowed extra key.
func schemaErrorFromDecode(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &SchemaError{
			Field:  typeErr.Field,
			Detail: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	return &SchemaError{Detail: err.Error()}
}

// schemaErrorFromViolation maps the first validator violation onto the
// error taxonomy. Failed name lookups surface as LookupError.
func schemaErrorFromViolation(fe validator.FieldError) error {
	switch fe.Tag() {
	case "daemon_name":
		name, _ := fe.Value().(string)
		return &LookupError{Kind: "daemon", Name: name}
	case "machine_name":
		name, _ := fe.Value().(string)
		return &LookupError{Kind: "machine", Name: name}
	}

	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	var detail string
	switch fe.Tag() {
	case "required":
		detail = "required key is missing"
	case "min":
		detail = "must not be empty"
	case "len":
		detail = fmt.Sprintf("must contain exactly %s items", fe.Param())
	case "gte":
		detail = fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		detail = fmt.Sprintf("must be <= %s", fe.Param())
	default:
		detail = fmt.Sprintf("violates %q constraint", fe.Tag())
	}

	return &SchemaError{Field: field, Detail: detail}
}
