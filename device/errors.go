// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

// ErrInvalidFormat is returned for a hardware format that cannot be driven.
var ErrInvalidFormat = errors.New("invalid device format")
