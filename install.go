package main

import (
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/kardianos/osext"
)

// The controller exits on a line fault; systemd restarts it.
const serviceFile = `
[Unit]
Description=Pedestrian Crossing Signal Controller
Wants=network-online.target
After=network-online.target

[Service]
ExecStart={{.BinPath}} run -c {{ .ConfigFile }}
Restart=on-failure
RestartSec=5

[Install]
WantedBy=multi-user.target
`

var serviceTmpl = template.Must(template.New("service").Parse(serviceFile))

const (
	binFile  = "usr/bin/crosswalk"
	unitFile = "usr/lib/systemd/system/crosswalk.service"
)

// install copies the running binary, a systemd unit and the default config
// under prefix. An existing config is kept unless reset is set.
func install(prefix, cfgPath string, reset bool) error {
	if prefix == "" {
		prefix = "/"
	}
	self, err := osext.Executable()
	if err != nil {
		return err
	}

	binPath := filepath.Join(prefix, binFile)
	err = copyFile(self, binPath, 0755)
	if err != nil {
		return err
	}

	err = writeFile(filepath.Join(prefix, unitFile), 0644, func(w io.Writer) error {
		return serviceTmpl.Execute(w, struct{ BinPath, ConfigFile string }{binPath, cfgPath})
	})
	if err != nil {
		return err
	}

	dstPath := filepath.Join(prefix, cfgPath)
	if _, err = os.Stat(dstPath); err == nil && !reset {
		return nil
	}
	return writeFile(dstPath, 0644, func(w io.Writer) error {
		_, err := io.WriteString(w, configFile)
		return err
	})
}

func copyFile(srcPath, dstPath string, mode os.FileMode) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	return writeFile(dstPath, mode, func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
}

func writeFile(path string, mode os.FileMode, fill func(io.Writer) error) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	err = fill(dst)
	if err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
