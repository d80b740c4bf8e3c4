// Package dom adapts parsed HTML documents to the validation engine.
//
// An Element is either a single form control or a container of controls, and
// implements validation.Field, validation.Target, validation.Markable and
// validation.DecorationHost. Invalid controls get the "invalid" class and
// aria-invalid="true". Messages are shown in a node carrying the
// "invalid-msg" class, role="alert" and data-for="<field name>"; a node
// placed by the author is reused, otherwise one is rendered from the error
// template right after the control. Hidden messages stay in the tree with
// display:none.
//
// # Usage
//
//	doc, err := dom.Parse(markup)
//	form, err := doc.Form("signup")
//	engine, err := validation.New(form, cfg)
//	binder, err := dom.Bind(engine)
//
//	email, _ := doc.FieldByName("email")
//	email.SetValue("someone@example.com")
//	binder.Blur(ctx, email)
//
//	ok, err := binder.Submit(ctx)
//	doc.Render(w)
package dom
