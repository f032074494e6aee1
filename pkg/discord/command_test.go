package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// TestCommandCreation verifies that commands can be created with the builder pattern
func TestCommandCreation(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler)

	if cmd == nil {
		t.Fatal("NewCommand returned nil")
	}

	if cmd.Name != "test" {
		t.Errorf("Name = %v, want %v", cmd.Name, "test")
	}

	if cmd.Description != "Test command" {
		t.Errorf("Description = %v, want %v", cmd.Description, "Test command")
	}

	if cmd.Category != "test" {
		t.Errorf("Category = %v, want %v", cmd.Category, "test")
	}

	if cmd.Run == nil {
		t.Error("Run function is nil")
	}
}

// TestCommandWithOptions verifies the WithOptions builder method
func TestCommandWithOptions(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "test-option",
		Description: "Test option",
		Required:    true,
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithOptions(option)

	if cmd.Options == nil {
		t.Fatal("Options is nil")
	}

	if len(cmd.Options) != 1 {
		t.Fatalf("Options length = %v, want %v", len(cmd.Options), 1)
	}

	if cmd.Options[0].Name != "test-option" {
		t.Errorf("Option name = %v, want %v", cmd.Options[0].Name, "test-option")
	}
}

// TestCommandWithPermissions verifies the permission builder methods
func TestCommandWithPermissions(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithUserPermissions(discordgo.PermissionAdministrator).
		WithBotPermissions(discordgo.PermissionSendMessages)

	if cmd.UserPermissions != discordgo.PermissionAdministrator {
		t.Errorf("UserPermissions = %v, want %v", cmd.UserPermissions, discordgo.PermissionAdministrator)
	}

	if cmd.BotPermissions != discordgo.PermissionSendMessages {
		t.Errorf("BotPermissions = %v, want %v", cmd.BotPermissions, discordgo.PermissionSendMessages)
	}
}

// TestToApplicationCommand verifies conversion to Discord application command
func TestToApplicationCommand(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "test-option",
		Description: "Test option",
		Required:    true,
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithOptions(option)

	appCmd := cmd.ToApplicationCommand()

	if appCmd == nil {
		t.Fatal("ToApplicationCommand returned nil")
	}

	if appCmd.Name != "test" {
		t.Errorf("ApplicationCommand Name = %v, want %v", appCmd.Name, "test")
	}

	if appCmd.Description != "Test command" {
		t.Errorf("ApplicationCommand Description = %v, want %v", appCmd.Description, "Test command")
	}

	if len(appCmd.Options) != 1 {
		t.Fatalf("ApplicationCommand Options length = %v, want %v", len(appCmd.Options), 1)
	}
}

// TestMemberHasRole verifies the role gate helper
func TestMemberHasRole(t *testing.T) {
	ctx := &CommandContext{
		Interaction: &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Member: &discordgo.Member{
					Roles: []string{"111", "222"},
				},
			},
		},
	}

	if !ctx.MemberHasRole("222") {
		t.Error("MemberHasRole should find a role the member carries")
	}

	if ctx.MemberHasRole("333") {
		t.Error("MemberHasRole should not find a role the member lacks")
	}

	if ctx.MemberHasRole("") {
		t.Error("MemberHasRole should reject an empty role ID")
	}

	// DM interactions have no member
	dmCtx := &CommandContext{
		Interaction: &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{},
		},
	}
	if dmCtx.MemberHasRole("111") {
		t.Error("MemberHasRole should be false without a member")
	}
}
