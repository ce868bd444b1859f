// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/poiesic/cilin/config"
	"github.com/poiesic/cilin/importer"
	"github.com/poiesic/cilin/logger"
	"github.com/poiesic/cilin/thesaurus"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cilin",
		Usage: "Chinese word and sentence similarity over the Cilin synonym taxonomy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"CILIN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set logging format (text, json)",
			},
			&cli.StringFlag{
				Name:    "taxonomy",
				Aliases: []string{"t"},
				Usage:   "Path to the taxonomy text file",
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Taxonomy file encoding (utf-8, gbk, gb18030)",
			},
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Usage:   "Path to the BadgerDB snapshot directory",
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "Similarity strategy (legacy, density2013, distance2016)",
			},
			&cli.StringFlag{
				Name:  "dict",
				Usage: "Path to a jieba dictionary for segmenting raw text",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import a taxonomy file into the snapshot store",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rewrite the store even if the taxonomy is unchanged",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries written per transaction",
						Value: importer.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts for conflicting writes",
						Value: importer.DefaultMaxAttempts,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: importer.DefaultRetryBaseDelay,
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Do not print progress",
					},
				},
			},
			{
				Name:      "codes",
				Usage:     "Print the codes of each word",
				ArgsUsage: "WORD...",
				Action:    codesCommand,
			},
			{
				Name:      "sim",
				Usage:     "Score the similarity of two words",
				ArgsUsage: "WORD1 WORD2",
				Action:    simCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Print the score under every strategy",
					},
				},
			},
			{
				Name:      "align",
				Usage:     "Score the similarity of two sentences",
				ArgsUsage: "TEXT1 TEXT2",
				Action:    alignCommand,
			},
			{
				Name:      "grade",
				Usage:     "Grade tab-separated sentence pairs read from a file or stdin",
				ArgsUsage: "[FILE]",
				Action:    gradeCommand,
			},
			{
				Name:      "suggest",
				Usage:     "Suggest vocabulary words close to a word",
				ArgsUsage: "WORD",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum similarity of a suggestion",
						Value: thesaurus.DefaultSuggestThreshold,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
					},
					&cli.DurationFlag{
						Name:  "shutdown-timeout",
						Usage: "Grace period for in-flight requests",
						Value: 10 * time.Second,
					},
				},
			},
		},
	}
}

// setup loads configuration, applies global flag overrides, and installs
// the logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	overrides := []struct {
		flag   string
		target *string
	}{
		{"log-level", &cfg.Logging.Level},
		{"log-format", &cfg.Logging.Format},
		{"taxonomy", &cfg.Taxonomy.Path},
		{"encoding", &cfg.Taxonomy.Encoding},
		{"store", &cfg.Store.Path},
		{"strategy", &cfg.Similarity.Strategy},
		{"dict", &cfg.Align.Dictionary},
	}
	for _, o := range overrides {
		if c.IsSet(o.flag) {
			*o.target = c.String(o.flag)
		}
	}

	if err := logger.Setup(c.App.ErrWriter, cfg.Logging.Level, cfg.Logging.Format); err != nil {
		if errors.Is(err, logger.ErrInvalidLevel) {
			return fmt.Errorf("%w: must be one of debug, info, warn, error", err)
		}
		return fmt.Errorf("%w: must be one of text, json", err)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func configFrom(c *cli.Context) (*config.Config, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}
