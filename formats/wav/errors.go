// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedEncoding  = errors.New("only 8, 16, 24 and 32-bit linear PCM is supported")
	ErrPartialFrame         = errors.New("sample count is not a multiple of the channel count")
)
