/*
Copyright © 2021 go-tag-rule-engine authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	tagger "github.com/kallasto/go-tag-rule-engine"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type counts struct {
	ok, fail int
}

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a tag ruleset for testing",
	Long: `Recursively parses tag rule files from filesystem and provides detailed
feedback to the user about expression syntax problems, with file and line context.`,
	Run: parse,
}

func parse(cmd *cobra.Command, args []string) {
	files, err := tagger.NewRuleFileList(viper.GetStringSlice("rules.dir"))
	if err != nil {
		logrus.Fatal(err)
	}
	for _, f := range files {
		logrus.Info(f)
	}
	logrus.Info("Extracting raw categories from tag files")
	categories, err := tagger.NewCategoryList(files, true)
	if err != nil {
		switch err.(type) {
		case tagger.ErrBulkParse:
			logrus.Error(err)
		default:
			logrus.Fatal(err)
		}
	}
	logrus.Infof("Got %d categories from %d files", len(categories), len(files))
	logrus.Info("Parsing expressions into AST")
	c := &counts{}
	for _, raw := range categories {
		logrus.Trace(raw.Name)
		_, err := tagger.NewTree(raw)
		if err != nil {
			c.fail++
			logrus.Errorf("%s", err)
		} else {
			logrus.Infof("%s: ok", raw.Name)
			c.ok++
		}
	}
	logrus.Infof("OK: %d; FAIL: %d", c.ok, c.fail)
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
