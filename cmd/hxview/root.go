package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pthm/hxview"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type flags struct {
	verbose    bool
	view       string
	model      string
	collection string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "hxview",
		Short:         "Render and inspect hxview view definitions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log lifecycle events")
	root.PersistentFlags().StringVar(&f.view, "view", "", "definition to use (defaults to the first file)")
	root.PersistentFlags().StringVar(&f.model, "model", "", "YAML file with model attributes")
	root.PersistentFlags().StringVar(&f.collection, "collection", "", "YAML file with a list of model attributes")

	root.AddCommand(newRenderCmd(f), newInspectCmd(f))
	return root
}

func (f *flags) logger() (*zap.Logger, error) {
	if !f.verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// buildView loads the definition files and creates the selected view with
// stub methods for every handler name the definition references.
func (f *flags) buildView(paths []string) (*hxview.View, *zap.Logger, error) {
	logger, err := f.logger()
	if err != nil {
		return nil, nil, err
	}

	reg := hxview.NewRegistry()
	if err := reg.LoadFiles(paths...); err != nil {
		return nil, nil, err
	}

	name := f.view
	if name == "" {
		def, err := hxview.LoadDefinitionFile(paths[0])
		if err != nil {
			return nil, nil, err
		}
		name = def.Name
	}
	def, ok := reg.Lookup(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", hxview.ErrUnknownView, name)
	}
	for method := range referencedMethods(def) {
		reg.Method(method, stubMethod(logger, method))
	}

	opts := []hxview.Option{hxview.WithLogger(logger)}
	if f.model != "" {
		attrs, err := readAttributes(f.model)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, hxview.WithModel(hxview.NewModel(attrs)))
	}
	if f.collection != "" {
		c, err := readCollection(f.collection)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, hxview.WithCollection(c))
	}

	v, err := reg.New(name, opts...)
	if err != nil {
		return nil, nil, err
	}
	return v, logger, nil
}

func referencedMethods(def *hxview.Definition) map[string]struct{} {
	names := map[string]struct{}{}
	add := func(m map[string]any) {
		for _, ref := range m {
			if s, ok := ref.(string); ok && s != "" {
				names[strings.TrimSpace(s)] = struct{}{}
			}
		}
	}
	add(def.Events)
	add(def.ModelEvents)
	add(def.CollectionEvents)
	add(def.ChildEvents)
	return names
}

func stubMethod(logger *zap.Logger, name string) hxview.Handler {
	return func(args ...any) any {
		logger.Info("method invoked", zap.String("method", name), zap.Int("args", len(args)))
		return nil
	}
}

func readAttributes(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	var attrs map[string]any
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return attrs, nil
}

func readCollection(path string) (*hxview.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}
	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	models := make([]*hxview.Model, len(items))
	for i, attrs := range items {
		models[i] = hxview.NewModel(attrs)
	}
	return hxview.NewCollection(models...), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
