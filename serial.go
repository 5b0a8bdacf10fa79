// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous

import "code.hybscloud.com/atomix"

// Serial identifies a Channel in observer events.
type Serial = uint32

var channels atomix.Uint32

func nextSerial() Serial {
	return channels.Add(1)
}
