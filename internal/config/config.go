// Package config is a small typed-configuration consumer of the sxmlc
// document model, used by tests to cross-check tree building against the
// standard library decoder.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"

	"github.com/phox/sxmlc"
)

// Config is a service configuration document.
type Config struct {
	Name    string   `xml:"name,attr"`
	Debug   bool     `xml:"debug,attr"`
	Motd    string   `xml:"motd"`
	Servers []Server `xml:"server"`
}

// Server is one upstream endpoint.
type Server struct {
	Host string `xml:"host,attr"`
	Port int    `xml:"port,attr"`
}

// Load reads path into a Config using the sxmlc tree builder.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := sxmlc.New(f).ParseDocument()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	root := doc.Root
	if root == nil || root.Tag != "config" {
		return nil, fmt.Errorf("%s: missing <config> root", path)
	}

	var cfg Config
	if i := root.SearchAttr("name", 0); i >= 0 {
		cfg.Name = root.Attrs[i].Value
	}
	if i := root.SearchAttr("debug", 0); i >= 0 {
		cfg.Debug, err = strconv.ParseBool(root.Attrs[i].Value)
		if err != nil {
			return nil, fmt.Errorf("%s: debug attribute: %w", path, err)
		}
	}
	if i := root.SearchChild("motd", 0); i >= 0 {
		cfg.Motd = root.Children[i].Text
	}
	for i := root.SearchChild("server", 0); i >= 0; i = root.SearchChild("server", i+1) {
		srv, err := decodeServer(root.Children[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg.Servers = append(cfg.Servers, srv)
	}
	return &cfg, nil
}

func decodeServer(n *sxmlc.Node) (Server, error) {
	var srv Server
	if i := n.SearchAttr("host", 0); i >= 0 {
		srv.Host = n.Attrs[i].Value
	}
	if i := n.SearchAttr("port", 0); i >= 0 {
		port, err := strconv.Atoi(n.Attrs[i].Value)
		if err != nil {
			return srv, fmt.Errorf("server port attribute: %w", err)
		}
		srv.Port = port
	}
	return srv, nil
}

// LoadStdlib reads path into a Config using encoding/xml, as a reference for
// the tests.
func LoadStdlib(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := xml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}
