// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"strconv"
	"strings"
)

// InfoValueForKey looks up key in a \key\value\key\value info string.
func InfoValueForKey(info, key string) string {
	info = strings.TrimPrefix(info, `\`)
	parts := strings.Split(info, `\`)
	for i := 0; i+1 < len(parts); i += 2 {
		if parts[i] == key {
			return parts[i+1]
		}
	}
	return ""
}

func infoInt(info, key string) (int, bool) {
	v, err := strconv.Atoi(InfoValueForKey(info, key))
	if err != nil {
		return 0, false
	}
	return v, true
}

func infoFlag(info, key string) bool {
	v, ok := infoInt(info, key)
	return ok && v == 1
}
