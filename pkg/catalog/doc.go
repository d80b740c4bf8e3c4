// Package catalog loads validation messages from YAML files.
//
// A catalog maps language tags to rule messages:
//
//	en:
//	  required: "{0} is required"
//	  min: "{0} should be greater than or equal to {1}"
//	de:
//	  required: "{0} ist erforderlich"
//
// Catalog messages form the external layer of a validation.Config: they
// override built-in messages and are overridden by engine options.
//
//	c, err := catalog.Load(ctx, "messages.yaml")
//	cfg, err := c.Config("de-AT")
//
// A Watcher reloads the file on change and publishes a fresh config
// atomically. Failed reloads are logged and the previous config is kept.
//
//	w, err := catalog.NewWatcher(ctx, "messages.yaml", "de")
//	defer w.Close()
//	go w.Run(ctx)
//	engine, err := validation.New(form, w.Config())
package catalog
