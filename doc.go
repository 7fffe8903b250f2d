// File: lixenwraith/settings/doc.go

// Package settings provides typed, file-backed application configuration and
// settings. A container is a Go struct type whose fields are values or nested
// section structs; its data lives in one TOML or JSON file and its live
// instance is held once per type by a Registry.
//
// Features:
//   - Two kinds of containers: Config (loaded, then immutable) and Settings
//     (changed at runtime with Update and written back to file)
//   - One live instance per type, for containers and for every nested section
//   - Default file paths derived from the type name (~/.my_app/config.toml)
//   - File format chosen by extension: TOML and JSON built in, YAML optional
//   - File includes for Config files via the "__include__" key
//   - Saves merge into the stored file, keeping keys written by other tools
//   - Type coercion via mapstructure and constraints via `validate` tags,
//     with all field failures reported together
//   - Flags for cobra/pflag to set the file path from the command line
//
// Quick Start:
//
//	type SectionSettings struct {
//	    Totals int `toml:"totals"`
//	}
//
//	type MyAppSettings struct {
//	    Name   string          `toml:"name"`
//	    Basics SectionSettings `toml:"basics"`
//	}
//
//	reg := settings.NewRegistry()
//	st, err := settings.NewSettings(reg, MyAppSettings{Name: "nice name", Basics: SectionSettings{Totals: 2}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := st.Get()                                                // loads ~/.my_app/settings.json
//	s, err = st.Update(map[string]any{"basics": map[string]any{"totals": 3}}) // new instance, saved to file
//	basics, err := settings.GetSection[SectionSettings](reg)          // the nested section on its own
//
// Struct tags:
//
//	`toml:"key"`           stored key of the field (default: lower-cased field name)
//	`toml:"key,required"`  the field has no default and must be stored in the file
//	`toml:"-"`             the field is not stored
//	`validate:"..."`       go-playground/validator constraints checked after loading
//
// Errors:
// Load, Get, Update, and SetFilepath return errors matching ErrInvalidPath,
// ErrNotFound, ErrValidation, ErrUsage, ErrNoFilepath, or ErrIncludeCycle
// with errors.Is. A missing file without the strict flag and an unknown file
// extension are not errors; they are logged to the registry's slog.Logger.
//
// Thread Safety:
// A Registry and its containers are safe for concurrent use. Saving merges
// into the file on disk without file locking, so two processes updating the
// same file concurrently can lose one update.
package settings
