package model

// Class модель одного занятия, либо окна между занятиями.
// Окно отличается наличием Window (поле window во входном JSON).
type Class struct {
	Time    string `json:"time,omitempty"`    //Время пары (например "11:30-13:30")
	Subject string `json:"subject,omitempty"` //Название предмета
	Room    string `json:"room,omitempty"`    //Аудитория
	Address string `json:"address,omitempty"` //Адрес корпуса

	Window   string `json:"window,omitempty"`   //Метка окна (свободное время между парами)
	Duration string `json:"duration,omitempty"` //Длительность окна
}

// IsWindow окно ли это, а не занятие
func (c Class) IsWindow() bool {
	return c.Window != ""
}
