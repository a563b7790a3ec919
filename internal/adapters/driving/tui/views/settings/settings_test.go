package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

func defaults() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	return &s
}

func loadedView(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(100, 40)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Equal(t, domain.SettingKeys(), v.keys)
	assert.Contains(t, v.View(), "Loading settings...")
}

func TestView_LoadSettings(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(defaults(), nil)

	v := loadedView(t, svc)

	require.NotNil(t, v.Settings())
	out := v.View()
	assert.Contains(t, out, domain.SettingServerURL)
	assert.Contains(t, out, domain.DefaultServerURL)
	assert.Contains(t, out, "(default)")
	svc.AssertExpectations(t)
}

func TestView_LoadError(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(nil, errors.New("corrupt config"))

	v := loadedView(t, svc)

	assert.Contains(t, v.View(), "Error: corrupt config")
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil)
	msg := v.Init()()

	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoSettingsService)
}

func TestView_Navigation(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(defaults(), nil)
	v := loadedView(t, svc)

	v.Update(keyRunes("k"))
	assert.Equal(t, domain.SettingServerURL, v.Selected())

	v.Update(keyRunes("j"))
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, domain.SettingRequestsPerSecond, v.Selected())

	for range 10 {
		v.Update(keyRunes("j"))
	}
	assert.Equal(t, domain.SettingStorageDir, v.Selected())
}

func TestView_EditAndSave(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(defaults(), nil)
	svc.On("Set", domain.SettingServerTimeout, "45").Return(nil)
	v := loadedView(t, svc)

	v.Update(keyRunes("j"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Editing())
	assert.Equal(t, "120", v.field.Value())

	v.field.SetValue(" 45 ")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, v.Editing())

	saved := cmd()
	assert.Equal(t, messages.SettingsSaved{Key: domain.SettingServerTimeout}, saved)

	_, reload := v.Update(saved)
	require.NotNil(t, reload)
	v.Update(reload())

	assert.Contains(t, v.View(), "Saved server.timeout_seconds")
	svc.AssertExpectations(t)
}

func TestView_SaveError(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(defaults(), nil)
	svc.On("Set", domain.SettingServerURL, "nope").Return(errors.New("invalid URL"))
	v := loadedView(t, svc)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.field.SetValue("nope")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, reload := v.Update(cmd())

	assert.Nil(t, reload)
	assert.Contains(t, v.View(), "Error: invalid URL")
}

func TestView_EscCancelsEdit(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(defaults(), nil)
	v := loadedView(t, svc)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Editing())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
	svc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_EnterBeforeLoad(t *testing.T) {
	v := NewView(nil, nil)
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.Editing())
}

func TestView_Reset(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(defaults(), nil)
	v := loadedView(t, svc)
	v.Update(keyRunes("j"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v.Reset()

	assert.False(t, v.Editing())
	assert.Equal(t, domain.SettingServerURL, v.Selected())
}
