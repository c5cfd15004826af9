package config

import (
	"fmt"
	"os"
)

func Template() string {
	return scorelinkTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(scorelinkTemplate), 0o600)
}

const scorelinkTemplate = `[serial]
port = "/dev/ttyUSB0"
baud = 9600
data_bits = 8
parity = "none"
stop_bits = 1

[decode]
# mm:ss | mm:ss.t | raw
clock_format = "mm:ss"
# anchored | search
match_mode = "anchored"
# 0 disables the limit
max_frame_bytes = 0
trim_numeric = true

[publish]
# tcp | redis
sink = "tcp"
# "none" disables publishing
address = "127.0.0.1"
port = 9000
connect_timeout = "5s"
write_timeout = "5s"
redis_stream = "scoreboard.ocr"
legacy_aliases = false

[metrics]
listen = ""
`
