// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web provides embedded assets shipped inside the binary. The
// starter resume template is seeded into the data directory on first
// run so the template library always has its sentinel default.
package web

import _ "embed"

// DefaultTemplate is the starter resume template written to
// data/templates/default.html when it does not exist yet.
//
//go:embed templates/default.html
var DefaultTemplate []byte
