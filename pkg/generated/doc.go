// Package generated contains the generated code for gRPC client and server stubs,
// and an OpenAPIv2 (swagger) JSON declaration, from protobuf source(s).
package generated

import _ "embed"

//go:generate buf generate --template ../../api/buf.gen.yaml ../../api

// SwaggerJSON contains the generated OpenAPIv2 (swagger) declaration exposed
// by REST endpoint.
//go:embed pihex.swagger.json
var SwaggerJSON []byte
