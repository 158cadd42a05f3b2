package cli

import (
	"context"
	"log"
	"os"
)

func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if !a.session.Login(ctx, userName, password) {
		log.Printf("Login unsuccessful: %v", a.session.LastError())
		return a.session.LastError()
	}

	log.Printf("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	log.Printf("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	name := u.Username
	if u.FirstName != "" || u.LastName != "" {
		name = name + " (" + u.FirstName + " " + u.LastName + ")"
	}
	printlnFn(name)
	if u.Email != "" {
		printlnFn(u.Email)
	}
	return nil
}
