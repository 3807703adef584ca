/*
Package pos wires the terminal together: one state store, one event router,
the cart engine, checkout, order history and the screen switcher.

	app, err := pos.New(pos.WithNotifier(ui), pos.WithView(ui))
	if err != nil {
	    return err
	}
	defer app.Close()
	if err := app.Start(ctx); err != nil {
	    return err
	}
	app.Router().Dispatch(ctx, evt)

A UI adapter implements View, Notifier, Confirmer, Printer and
screen.Presenter, translates native input into router events and calls
Dispatch. Everything else happens inside the handlers registered by Start.
*/
package pos
