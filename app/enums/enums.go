// Package enums provides type-safe enumeration types shared by the service packages.
//
// The enum types are defined as unexported integer types in this file and the go:generate
// directive invokes go-pkgz/enum to create the exported types with String, Parse*, Scan/Value
// and MarshalText/UnmarshalText methods in *_enum.go files.
//
// Usage:
//
//	kind := enums.ErrorKindNotFound
//	fmt.Println(kind.String()) // "notfound"
//
//	parsed, err := enums.ParseErrorKind("conflict")
//	if err != nil {
//	    // handle invalid input
//	}
//
// To regenerate after modifications:
//
//	go generate ./app/enums
//
// The unexported type definitions below are only used by the generator.
package enums

//go:generate go run github.com/go-pkgz/enum@latest -type errorKind -lower

// errorKind classifies failures reported by the job source manager and the upload server.
// Use the exported ErrorKind type and its constants in actual code.
type errorKind int

const (
	errorKindUnexpected errorKind = iota
	errorKindAuthentication
	errorKindValidation
	errorKindConflict
	errorKindNotFound
	errorKindPathSecurity
)
